// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/adysingh5711/VeriFund/vf"
)

// Config is the yaml genesis configuration.
type Config struct {
	LaunchTime      uint64    `yaml:"launchTime"`
	Admins          []string  `yaml:"admins"`
	Treasury        string    `yaml:"treasury"`
	StakeToken      string    `yaml:"stakeToken"`
	PlatformFeeRate *uint64   `yaml:"platformFeeRate"` // basis points
	ReviewerStake   *uint64   `yaml:"reviewerStake"`
	PanelSize       *uint64   `yaml:"panelSize"`
	Balances        []Balance `yaml:"balances"`
}

// Balance is an initial token allocation. Empty token is the native one.
type Balance struct {
	Token  string `yaml:"token"`
	Holder string `yaml:"holder"`
	Amount string `yaml:"amount"`
}

// LoadConfig reads a yaml config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis config")
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates yaml config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config.
func (c *Config) Validate() error {
	if len(c.Admins) == 0 {
		return errors.New("at least one admin required")
	}
	for _, s := range c.Admins {
		if err := checkAddress(s, "admin"); err != nil {
			return err
		}
	}
	for _, s := range []string{c.Treasury, c.StakeToken} {
		if s == "" {
			continue
		}
		if _, err := vf.ParseAddress(s); err != nil {
			return errors.Wrapf(err, "invalid address %q", s)
		}
	}
	if c.PlatformFeeRate != nil && *c.PlatformFeeRate > vf.FeeDenominator {
		return errors.Errorf("platform fee rate %d exceeds %d", *c.PlatformFeeRate, vf.FeeDenominator)
	}
	if c.PanelSize != nil && (*c.PanelSize < vf.MinReviewers || *c.PanelSize > vf.MaxPanelSize) {
		return errors.Errorf("panel size %d out of [%d, %d]", *c.PanelSize, vf.MinReviewers, vf.MaxPanelSize)
	}
	for _, b := range c.Balances {
		if b.Token != "" {
			if _, err := vf.ParseAddress(b.Token); err != nil {
				return errors.Wrapf(err, "invalid token %q", b.Token)
			}
		}
		if err := checkAddress(b.Holder, "holder"); err != nil {
			return err
		}
		amount, ok := new(big.Int).SetString(b.Amount, 0)
		if !ok || amount.Sign() < 0 {
			return errors.Errorf("invalid amount %q", b.Amount)
		}
	}
	return nil
}

func checkAddress(s, what string) error {
	addr, err := vf.ParseAddress(s)
	if err != nil {
		return errors.Wrapf(err, "invalid %s %q", what, s)
	}
	if addr.IsZero() {
		return errors.Errorf("zero %s", what)
	}
	return nil
}
