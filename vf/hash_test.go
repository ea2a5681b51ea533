// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vf

import (
	"io"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

func TestBlake2b(t *testing.T) {
	data := []byte("verifund")
	assert.Equal(t, Blake2b(data), Blake2b(data[:4], data[4:]))
	assert.Equal(t, Blake2b(data), Blake2bFn(func(w io.Writer) { w.Write(data) }))
}

func TestKeccak256(t *testing.T) {
	data := []byte("verifund")
	assert.Equal(t, Bytes32(crypto.Keccak256Hash(data)), Keccak256(data))
	assert.Equal(t, Keccak256(data), Keccak256(data[:3], data[3:]))
}

func BenchmarkBlake2b(b *testing.B) {
	data := make([]byte, 100)
	for b.Loop() {
		Blake2b(data)
	}
}
