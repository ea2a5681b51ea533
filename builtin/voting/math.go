// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"github.com/holiman/uint256"

	"github.com/adysingh5711/VeriFund/vf"
)

// IntegerSqrt returns floor(sqrt(x)) by Newton's iteration over integers.
func IntegerSqrt(x *uint256.Int) *uint256.Int {
	// z = (x+1)/2 without overflowing at the top of the range
	z := new(uint256.Int).Rsh(x, 1)
	if x.Uint64()&1 == 1 {
		z.AddUint64(z, 1)
	}
	y := new(uint256.Int).Set(x)
	for z.Lt(y) {
		y.Set(z)
		q := new(uint256.Int).Div(x, z)
		z.Add(q, z)
		z.Rsh(z, 1)
	}
	return y
}

// Score returns the quadratic score contribution of voteCount votes,
// isqrt(voteCount * ScoreScale).
func Score(voteCount uint64) *uint256.Int {
	x := new(uint256.Int).Mul(uint256.NewInt(voteCount), uint256.NewInt(vf.ScoreScale))
	return IntegerSqrt(x)
}

// ComputeCommitment returns the commitment a voter publishes before revealing
// proposalID and voteCount with nonce.
func ComputeCommitment(proposalID, voteCount uint64, nonce []byte) vf.Bytes32 {
	p := vf.Uint64ToBytes32(proposalID)
	c := vf.Uint64ToBytes32(voteCount)
	return vf.Keccak256(p[:], c[:], nonce)
}
