// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
	err  error
}

// NewBuilder creates a builder for method.
func NewBuilder(method string) *Builder {
	return &Builder{body: body{Method: method}}
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Args rlp encodes the method arguments.
func (b *Builder) Args(args any) *Builder {
	if args == nil {
		b.body.Args = nil
		return b
	}
	enc, err := rlp.EncodeToBytes(args)
	if err != nil {
		b.err = errors.Wrap(err, "encode args")
		return b
	}
	b.body.Args = enc
	return b
}

// Build build tx object.
func (b *Builder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	tx := Transaction{body: b.body}
	return &tx, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Transaction {
	tx, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tx
}
