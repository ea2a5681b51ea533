// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/adysingh5711/VeriFund/kv"
	"github.com/adysingh5711/VeriFund/vf"
)

// Stage abstracts the changes of a state pending to be committed.
type Stage struct {
	stater  *Stater
	changes map[storageKey]rlp.RawValue
	order   []storageKey
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes a digest over the changed slots, independent of write order.
func (s *Stage) Hash() vf.Bytes32 {
	keys := make([][]byte, 0, len(s.changes))
	vals := make(map[string]rlp.RawValue, len(s.changes))
	for k, v := range s.changes {
		kb := k.bytes()
		keys = append(keys, kb)
		vals[string(kb)] = v
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })

	return vf.Blake2bFn(func(w io.Writer) {
		for _, k := range keys {
			w.Write(k)
			w.Write(vals[string(k)])
		}
	})
}

// Commit writes all changes, together with whatever extra writes, in one atomic batch.
func (s *Stage) Commit(extra func(kv.Putter) error) error {
	bulk := s.stater.db.Bulk()
	storage := StorageBucket.NewPutter(bulk)
	for _, k := range s.order {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = storage.Delete(k.bytes())
		} else {
			err = storage.Put(k.bytes(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if extra != nil {
		if err := extra(bulk); err != nil {
			return err
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	s.stater.committed(s.changes)
	return nil
}
