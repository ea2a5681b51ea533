// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adysingh5711/VeriFund/builtin/eligibility"
	"github.com/adysingh5711/VeriFund/genesis"
	"github.com/adysingh5711/VeriFund/tx"
)

func TestBuildAllowList(t *testing.T) {
	accs := genesis.DevAccounts()
	input := "# voters\n" + accs[0].Address.String() + "\n\n" + accs[1].Address.String() + "\n" + accs[2].Address.String() + "\n"

	list, err := buildAllowList(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, list.Proofs, 3)
	for _, acc := range accs[:3] {
		proof, ok := list.Proofs[acc.Address.String()]
		require.True(t, ok)
		assert.True(t, eligibility.Verify(acc.Address, proof, list.Root))
	}
	assert.False(t, eligibility.Verify(accs[3].Address, list.Proofs[accs[0].Address.String()], list.Root))

	_, err = buildAllowList(strings.NewReader("not-an-address\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = buildAllowList(strings.NewReader("\n# nothing\n"))
	assert.Error(t, err)
}

func TestBuildTx(t *testing.T) {
	key := genesis.DevAccounts()[0].PrivateKey
	to := genesis.DevAccounts()[1].Address

	trx, err := buildTx(tx.MethodTransfer, `{"to":"`+to.String()+`","amount":12}`, 3, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), trx.Nonce())
	assert.Equal(t, tx.MethodTransfer, trx.Method())

	origin, err := trx.Origin()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[0].Address, origin)

	var args tx.TransferArgs
	require.NoError(t, trx.DecodeArgs(&args))
	assert.Equal(t, to, args.To)
	assert.Equal(t, 0, args.Amount.Cmp(big.NewInt(12)))

	decoded, err := tx.ParseHex(trx.Hex())
	require.NoError(t, err)
	assert.Equal(t, trx.ID(), decoded.ID())

	_, err = buildTx("mint", "{}", 0, key)
	assert.Error(t, err)
	_, err = buildTx(tx.MethodTransfer, `{"recipient":"x"}`, 0, key)
	assert.Error(t, err)
}

func TestLoadKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("0x"+strings.ToUpper(hex.EncodeToString(crypto.FromECDSA(key)))+"\n"), 0o600))

	loaded, err := loadKey(path)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(loaded.PublicKey))

	_, err = loadKey("")
	assert.Error(t, err)
	_, err = loadKey(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
