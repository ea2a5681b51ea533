// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin"
	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/builtin/funding"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis identifies the initial state.
type Genesis struct {
	ID         vf.Bytes32
	LaunchTime uint64
}

// NewBuilder creates the genesis builder of config.
func NewBuilder(cfg *Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return new(Builder).
		LaunchTime(cfg.LaunchTime).
		State(func(st *state.State) error {
			set := builtin.Bind(st, nil)
			for _, s := range cfg.Admins {
				if _, err := set.Access.Grant(vf.MustParseAddress(s), access.Admin); err != nil {
					return err
				}
			}
			fctx := set.Funding.Context()
			if cfg.Treasury != "" {
				set.Funding.SetTreasury(vf.MustParseAddress(cfg.Treasury))
			}
			if cfg.StakeToken != "" {
				set.Funding.SetStakeToken(vf.MustParseAddress(cfg.StakeToken))
			}
			if cfg.PlatformFeeRate != nil {
				funding.PlatformFeeRate.Override(fctx, *cfg.PlatformFeeRate)
			}
			if cfg.ReviewerStake != nil {
				funding.ReviewerStakeRequired.Override(fctx, *cfg.ReviewerStake)
			}
			if cfg.PanelSize != nil {
				funding.PanelSize.Override(fctx, *cfg.PanelSize)
			}
			for _, b := range cfg.Balances {
				token := vf.Address{}
				if b.Token != "" {
					token = vf.MustParseAddress(b.Token)
				}
				amount, _ := new(big.Int).SetString(b.Amount, 0)
				if err := set.Ledger.Mint(token, vf.MustParseAddress(b.Holder), amount); err != nil {
					return errors.Wrapf(err, "mint to %v", b.Holder)
				}
			}
			return nil
		}), nil
}

// Apply builds the genesis of cfg on stater.
func Apply(stater *state.Stater, cfg *Config) (*Genesis, error) {
	b, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return b.Build(stater)
}
