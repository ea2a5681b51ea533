// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eligibility verifies membership of an address in a published allow-list,
// represented by the root of a keccak256 merkle tree.
package eligibility

import (
	"github.com/adysingh5711/VeriFund/vf"
)

// MaxProofDepth bounds the proof length accepted by Verify.
const MaxProofDepth = 64

// ProofStep is one level of a merkle proof.
// Left is set when Sibling is the left operand of the pair hash.
type ProofStep struct {
	Sibling vf.Bytes32 `json:"sibling"`
	Left    bool       `json:"left"`
}

// Proof is the path of siblings from a leaf up to the root.
type Proof []ProofStep

// Leaf returns the leaf hash of addr.
func Leaf(addr vf.Address) vf.Bytes32 {
	return vf.Keccak256(addr.Bytes())
}

// Verify reports whether addr is included under root.
// It fails closed: a zero root or an oversized proof never verifies.
func Verify(addr vf.Address, proof Proof, root vf.Bytes32) bool {
	if root.IsZero() || len(proof) > MaxProofDepth {
		return false
	}
	return computeRoot(Leaf(addr), proof) == root
}

func computeRoot(leaf vf.Bytes32, proof Proof) vf.Bytes32 {
	node := leaf
	for _, step := range proof {
		if step.Left {
			node = vf.Keccak256(step.Sibling[:], node[:])
		} else {
			node = vf.Keccak256(node[:], step.Sibling[:])
		}
	}
	return node
}
