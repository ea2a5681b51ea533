// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sequencer

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/kv"
	"github.com/adysingh5711/VeriFund/tx"
)

var (
	LogBucket   = kv.Bucket("l") // seq => entry
	IndexBucket = kv.Bucket("i") // tx id => seq
	MetaBucket  = kv.Bucket("m")

	headKey = []byte("head")
)

// Head is the position of the last applied transaction.
type Head struct {
	Seq  uint64
	Time uint64
}

// Entry is one record of the transaction log.
type Entry struct {
	Seq     uint64
	Tx      *tx.Transaction
	Receipt *tx.Receipt
}

func seqKey(seq uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], seq)
	return k[:]
}

func loadHead(getter kv.Getter) (*Head, error) {
	data, err := MetaBucket.NewGetter(getter).Get(headKey)
	if err != nil {
		if getter.IsNotFound(err) {
			return &Head{}, nil
		}
		return nil, errors.Wrap(err, "load head")
	}
	var head Head
	if err := rlp.DecodeBytes(data, &head); err != nil {
		return nil, errors.Wrap(err, "decode head")
	}
	return &head, nil
}

func putEntry(putter kv.Putter, entry *Entry, head *Head) error {
	data, err := rlp.EncodeToBytes(entry)
	if err != nil {
		return errors.Wrap(err, "encode entry")
	}
	if err := LogBucket.NewPutter(putter).Put(seqKey(entry.Seq), data); err != nil {
		return err
	}
	seq, err := rlp.EncodeToBytes(entry.Seq)
	if err != nil {
		return err
	}
	if err := IndexBucket.NewPutter(putter).Put(entry.Tx.ID().Bytes(), seq); err != nil {
		return err
	}
	data, err = rlp.EncodeToBytes(head)
	if err != nil {
		return errors.Wrap(err, "encode head")
	}
	return MetaBucket.NewPutter(putter).Put(headKey, data)
}
