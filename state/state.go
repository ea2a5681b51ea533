// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/adysingh5711/VeriFund/kv"
	"github.com/adysingh5711/VeriFund/stackedmap"
	"github.com/adysingh5711/VeriFund/vf"
)

// StorageBucket is the kv bucket holding all storage slots, keyed by address ‖ key.
const StorageBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State is the working view of the subsystems' storage.
// Writes are journaled in memory until staged and committed.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap
}

type storageKey struct {
	addr vf.Address
	key  vf.Bytes32
}

func (k storageKey) bytes() []byte {
	return append(k.addr.Bytes(), k.key[:]...)
}

func newState(stater *Stater, load func(storageKey) (rlp.RawValue, error)) *State {
	s := &State{stater: stater}
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		v, err := load(key.(storageKey))
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	})
	return s
}

// GetStorage returns storage value for the given address and key.
// Raw values which are rlp lists are returned as their blake2b hash.
func (s *State) GetStorage(addr vf.Address, key vf.Bytes32) (vf.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return vf.Bytes32{}, err
	}
	if len(raw) == 0 {
		return vf.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return vf.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		return vf.Blake2b(raw), nil
	}
	return vf.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr vf.Address, key, value vf.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr vf.Address, key vf.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr vf.Address, key vf.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr vf.Address, key vf.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr vf.Address, key vf.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage collects the journaled changes for commit.
// Later writes to the same slot override earlier ones.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	var order []storageKey
	s.sm.Journal(func(k, v any) bool {
		key := k.(storageKey)
		if _, ok := changes[key]; !ok {
			order = append(order, key)
		}
		changes[key] = v.(rlp.RawValue)
		return true
	})
	return &Stage{
		stater:  s.stater,
		changes: changes,
		order:   order,
	}
}
