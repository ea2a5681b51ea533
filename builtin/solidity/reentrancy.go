// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/adysingh5711/VeriFund/vf"
)

// ReentrancyGuard is a transaction scoped exclusive lock kept in storage.
type ReentrancyGuard struct {
	entered *Bool
}

func NewReentrancyGuard(ctx *Context, pos vf.Bytes32) *ReentrancyGuard {
	return &ReentrancyGuard{entered: NewBool(ctx, pos)}
}

// Enter takes the lock. It returns false if the lock is already held.
// The returned release func must be called on every exit path.
func (g *ReentrancyGuard) Enter() (release func(), ok bool, err error) {
	entered, err := g.entered.Get()
	if err != nil {
		return nil, false, err
	}
	if entered {
		return nil, false, nil
	}
	g.entered.Set(true)
	return func() { g.entered.Set(false) }, true, nil
}
