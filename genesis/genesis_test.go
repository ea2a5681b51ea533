// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"fmt"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adysingh5711/VeriFund/builtin"
	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/builtin/funding"
	"github.com/adysingh5711/VeriFund/builtin/ledger"
	"github.com/adysingh5711/VeriFund/genesis"
	"github.com/adysingh5711/VeriFund/lvldb"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

func newStater(t *testing.T) *state.Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.NewStater(db, 0)
}

func TestDevGenesis(t *testing.T) {
	stater := newStater(t)
	gene, err := genesis.Apply(stater, genesis.DevConfig())
	require.NoError(t, err)
	assert.False(t, gene.ID.IsZero())

	accs := genesis.DevAccounts()
	set := builtin.Bind(stater.NewState(), nil)

	ok, err := set.Access.HasCapability(accs[0].Address, access.Admin)
	require.NoError(t, err)
	assert.True(t, ok)

	treasury, err := set.Funding.Treasury()
	require.NoError(t, err)
	assert.Equal(t, accs[1].Address, treasury)

	bal, err := set.Ledger.Balance(ledger.Native, accs[5].Address)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000000000", bal.String())

	again, err := genesis.Apply(stater, genesis.DevConfig())
	require.NoError(t, err)
	assert.Equal(t, gene.ID, again.ID)

	other := genesis.DevConfig()
	other.LaunchTime++
	_, err = genesis.Apply(stater, other)
	assert.ErrorContains(t, err, "genesis mismatch")
}

func TestParseConfig(t *testing.T) {
	admin := genesis.DevAccounts()[0].Address.String()
	token := vf.BytesToAddress([]byte("token")).String()
	cfg, err := genesis.ParseConfig([]byte(fmt.Sprintf(`
launchTime: 100
admins: ["%[1]s"]
stakeToken: "%[2]s"
platformFeeRate: 500
reviewerStake: 10
panelSize: 5
balances:
  - token: "%[2]s"
    holder: "%[1]s"
    amount: "42"
`, admin, token)))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), cfg.LaunchTime)
	require.Len(t, cfg.Balances, 1)

	stater := newStater(t)
	_, err = genesis.Apply(stater, cfg)
	require.NoError(t, err)

	set := builtin.Bind(stater.NewState(), nil)
	ctx := set.Funding.Context()
	assert.Equal(t, uint64(500), funding.PlatformFeeRate.Get(ctx))
	assert.Equal(t, uint64(10), funding.ReviewerStakeRequired.Get(ctx))
	assert.Equal(t, uint64(5), funding.PanelSize.Get(ctx))

	stakeToken, err := set.Funding.StakeToken()
	require.NoError(t, err)
	assert.Equal(t, token, stakeToken.String())

	bal, err := set.Ledger.Balance(vf.MustParseAddress(token), vf.MustParseAddress(admin))
	require.NoError(t, err)
	assert.Equal(t, int64(42), bal.Int64())
}

func TestInvalidConfig(t *testing.T) {
	admin := genesis.DevAccounts()[0].Address.String()
	tests := []struct {
		name string
		yaml string
	}{
		{"no admin", "launchTime: 1"},
		{"bad admin", "admins: [nope]"},
		{"zero admin", "admins: [\"0x0000000000000000000000000000000000000000\"]"},
		{"fee", "admins: [\"" + admin + "\"]\nplatformFeeRate: 10001"},
		{"panel", "admins: [\"" + admin + "\"]\npanelSize: 1"},
		{"panel cap", "admins: [\"" + admin + "\"]\npanelSize: 33"},
		{"panel overflow", "admins: [\"" + admin + "\"]\npanelSize: 18446744073709551615"},
		{"amount", "admins: [\"" + admin + "\"]\nbalances: [{holder: \"" + admin + "\", amount: \"-1\"}]"},
		{"yaml", "admins: [:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := genesis.ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestGenesisReopensUsedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.db")
	accs := genesis.DevAccounts()

	db, err := lvldb.New(path, lvldb.Options{})
	require.NoError(t, err)
	stater := state.NewStater(db, 0)
	gene, err := genesis.Apply(stater, genesis.DevConfig())
	require.NoError(t, err)

	st := stater.NewState()
	amount := big.NewInt(1000)
	require.NoError(t, builtin.Ledger.WithState(st, nil).Transfer(ledger.Native, accs[4].Address, accs[5].Address, amount))
	require.NoError(t, st.Stage().Commit(nil))
	require.NoError(t, db.Close())

	db, err = lvldb.New(path, lvldb.Options{})
	require.NoError(t, err)
	defer db.Close()
	stater = state.NewStater(db, 0)

	again, err := genesis.Apply(stater, genesis.DevConfig())
	require.NoError(t, err)
	assert.Equal(t, *gene, *again)

	b, err := genesis.NewBuilder(genesis.DevConfig())
	require.NoError(t, err)
	id, err := b.ComputeID()
	require.NoError(t, err)
	assert.Equal(t, gene.ID, id)

	initial, _ := new(big.Int).SetString("1000000000000000000000000000", 10)
	bal, err := builtin.Ledger.WithState(stater.NewState(), nil).Balance(ledger.Native, accs[5].Address)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Add(initial, amount).String(), bal.String())
}
