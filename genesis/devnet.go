// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/adysingh5711/VeriFund/vf"
)

// DevAccount account for development.
type DevAccount struct {
	Address    vf.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for development.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{vf.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevConfig is the genesis of a development node. The first dev account is
// the admin, the second the treasury, and every account holds 1e9 native tokens.
func DevConfig() *Config {
	accs := DevAccounts()
	cfg := &Config{
		LaunchTime: 1767225600, // 2026-01-01T00:00:00Z
		Admins:     []string{accs[0].Address.String()},
		Treasury:   accs[1].Address.String(),
	}
	amount := new(big.Int).Mul(big.NewInt(1e9), big.NewInt(1e18))
	for _, acc := range accs {
		cfg.Balances = append(cfg.Balances, Balance{Holder: acc.Address.String(), Amount: amount.String()})
	}
	return cfg
}
