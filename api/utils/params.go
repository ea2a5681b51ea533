// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/vf"
)

// ParseUint64 parses a path or query parameter named name.
func ParseUint64(s, name string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return v, nil
}

// ParseAddress parses a path or query parameter named name.
func ParseAddress(s, name string) (vf.Address, error) {
	addr, err := vf.ParseAddress(s)
	if err != nil {
		return vf.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return *addr, nil
}

// ParseToken parses a token parameter. "native" names the native token.
func ParseToken(s string) (vf.Address, error) {
	if s == "native" {
		return vf.Address{}, nil
	}
	return ParseAddress(s, "token")
}
