// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/adysingh5711/VeriFund/builtin"
	"github.com/adysingh5711/VeriFund/vf"
)

// isBuiltin reports whether addr is the account of a builtin subsystem.
// Funds sent there directly could never be moved again.
func isBuiltin(addr vf.Address) bool {
	switch addr {
	case builtin.Access.Address, builtin.Ledger.Address, builtin.Voting.Address,
		builtin.Funding.Address, builtin.StakePool, builtin.Runtime:
		return true
	}
	return false
}
