// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/adysingh5711/VeriFund/vf"
)

func checkSqrt(t *testing.T, x *uint256.Int) {
	t.Helper()
	r := IntegerSqrt(x)

	sq, overflow := new(uint256.Int).MulOverflow(r, r)
	assert.False(t, overflow)
	assert.True(t, sq.Cmp(x) <= 0, "isqrt(%v)^2 > x", x)

	next := new(uint256.Int).AddUint64(r, 1)
	nextSq, overflow := new(uint256.Int).MulOverflow(next, next)
	if !overflow {
		assert.True(t, nextSq.Cmp(x) > 0, "(isqrt(%v)+1)^2 <= x", x)
	}
}

func TestIntegerSqrt(t *testing.T) {
	for _, tt := range []struct{ x, want uint64 }{
		{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 2}, {15, 3}, {16, 4}, {17, 4},
		{1_000_000, 1000}, {999_999, 999},
	} {
		assert.Equal(t, tt.want, IntegerSqrt(uint256.NewInt(tt.x)).Uint64(), "x=%d", tt.x)
	}

	checkSqrt(t, new(uint256.Int).SetAllOne())
	checkSqrt(t, uint256.NewInt(math.MaxUint64))

	r := rand.New(rand.NewPCG(1, 2)) //#nosec G404
	for range 1000 {
		x := new(uint256.Int).SetUint64(r.Uint64())
		x.Lsh(x, uint(r.IntN(190)))
		checkSqrt(t, x)
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, uint64(1_000_000_000), Score(1).Uint64())
	assert.Equal(t, uint64(3_000_000_000), Score(9).Uint64())
	// sqrt(5e18) = 2236067977.49...
	assert.Equal(t, uint64(2_236_067_977), Score(5).Uint64())
	assert.Equal(t, uint64(0), Score(0).Uint64())
	assert.Equal(t, vf.ScoreScale, Score(1).Uint64()*Score(1).Uint64())
}

func TestComputeCommitment(t *testing.T) {
	a := ComputeCommitment(1, 5, []byte("abc"))
	assert.Equal(t, a, ComputeCommitment(1, 5, []byte("abc")))
	assert.NotEqual(t, a, ComputeCommitment(1, 5, []byte("abd")))
	assert.NotEqual(t, a, ComputeCommitment(5, 1, []byte("abc")))

	p := vf.Uint64ToBytes32(1)
	c := vf.Uint64ToBytes32(5)
	assert.Equal(t, vf.Keccak256(p[:], c[:], []byte("abc")), a)
}
