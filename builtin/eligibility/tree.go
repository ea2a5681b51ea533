// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eligibility

import (
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/vf"
)

// Tree is a merkle tree built over an allow-list.
// An odd node at the end of a level is paired with itself.
type Tree struct {
	levels [][]vf.Bytes32
	index  map[vf.Address]int
}

// NewTree builds a tree. Duplicated addresses are kept once.
func NewTree(addrs []vf.Address) (*Tree, error) {
	if len(addrs) == 0 {
		return nil, errors.New("empty allow-list")
	}
	t := &Tree{index: make(map[vf.Address]int, len(addrs))}

	leaves := make([]vf.Bytes32, 0, len(addrs))
	for _, addr := range addrs {
		if _, dup := t.index[addr]; dup {
			continue
		}
		t.index[addr] = len(leaves)
		leaves = append(leaves, Leaf(addr))
	}

	level := leaves
	t.levels = append(t.levels, level)
	for len(level) > 1 {
		next := make([]vf.Bytes32, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left, right := level[i], level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, vf.Keccak256(left[:], right[:]))
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t, nil
}

// Root returns the merkle root.
func (t *Tree) Root() vf.Bytes32 {
	return t.levels[len(t.levels)-1][0]
}

// Len returns the number of distinct leaves.
func (t *Tree) Len() int {
	return len(t.levels[0])
}

// Proof returns the inclusion proof of addr.
func (t *Tree) Proof(addr vf.Address) (Proof, bool) {
	idx, ok := t.index[addr]
	if !ok {
		return nil, false
	}
	proof := make(Proof, 0, len(t.levels)-1)
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := idx ^ 1
		if sibling >= len(level) {
			sibling = idx
		}
		proof = append(proof, ProofStep{
			Sibling: level[sibling],
			Left:    sibling < idx,
		})
		idx /= 2
	}
	return proof, true
}
