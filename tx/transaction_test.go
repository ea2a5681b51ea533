// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adysingh5711/VeriFund/vf"
)

func TestSignAndOrigin(t *testing.T) {
	pk, err := crypto.GenerateKey()
	require.NoError(t, err)

	trx := NewBuilder(MethodFundProject).
		Nonce(3).
		Args(&FundProjectArgs{ProjectID: 1, Amount: big.NewInt(100)}).
		MustBuild()

	_, err = trx.Origin()
	assert.Error(t, err, "unsigned")
	assert.True(t, trx.ID().IsZero())

	signed := MustSign(trx, pk)
	origin, err := signed.Origin()
	require.NoError(t, err)
	assert.Equal(t, vf.Address(crypto.PubkeyToAddress(pk.PublicKey)), origin)
	assert.Equal(t, trx.SigningHash(), signed.SigningHash(), "signature is not part of the signing hash")
	assert.False(t, signed.ID().IsZero())
	assert.NoError(t, signed.Validate())

	var args FundProjectArgs
	require.NoError(t, signed.DecodeArgs(&args))
	assert.Equal(t, uint64(1), args.ProjectID)
	assert.Equal(t, int64(100), args.Amount.Int64())
}

func TestEncoding(t *testing.T) {
	pk, err := crypto.GenerateKey()
	require.NoError(t, err)

	trx := MustSign(NewBuilder(MethodPause).Nonce(7).Args(&NoArgs{}).MustBuild(), pk)

	dec, err := ParseHex(trx.Hex())
	require.NoError(t, err)
	assert.Equal(t, trx.ID(), dec.ID())
	assert.Equal(t, uint64(7), dec.Nonce())
	assert.Equal(t, MethodPause, dec.Method())
	assert.Equal(t, trx.Signature(), dec.Signature())

	raw, err := rlp.EncodeToBytes(trx)
	require.NoError(t, err)
	assert.Equal(t, len(raw), trx.Size())

	_, err = ParseHex("0xzz")
	assert.Error(t, err)
	_, err = ParseHex("0x01")
	assert.Error(t, err)
}

func TestTamperedSignatureChangesOrigin(t *testing.T) {
	pk, err := crypto.GenerateKey()
	require.NoError(t, err)
	trx := MustSign(NewBuilder(MethodPause).MustBuild(), pk)
	origin, err := trx.Origin()
	require.NoError(t, err)

	tampered := NewBuilder(MethodUnpause).MustBuild().WithSignature(trx.Signature())
	other, err := tampered.Origin()
	if err == nil {
		assert.NotEqual(t, origin, other)
	}
}

func TestValidate(t *testing.T) {
	pk, err := crypto.GenerateKey()
	require.NoError(t, err)

	assert.Error(t, MustSign(NewBuilder("").MustBuild(), pk).Validate())
	assert.Error(t, NewBuilder(MethodPause).MustBuild().Validate())

	large := NewBuilder(MethodCreateProject).Args(&CreateProjectArgs{Descriptions: []string{string(make([]byte, MaxArgsSize))}}).MustBuild()
	assert.Error(t, MustSign(large, pk).Validate())
}

func TestNewArgs(t *testing.T) {
	for _, m := range Methods() {
		args, err := NewArgs(m)
		require.NoError(t, err, m)
		_, err = rlp.EncodeToBytes(args)
		assert.NoError(t, err, m)
	}
	_, err := NewArgs("selfdestruct")
	assert.Error(t, err)

	args, err := NewArgs(MethodRevealVote)
	require.NoError(t, err)
	assert.IsType(t, &RevealVoteArgs{}, args)
}
