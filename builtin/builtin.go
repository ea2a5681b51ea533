// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/builtin/funding"
	"github.com/adysingh5711/VeriFund/builtin/ledger"
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/builtin/voting"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

// Builtin subsystems binding.
var (
	Access    = &accessContract{mustAddress("Access")}
	Ledger    = &ledgerContract{mustAddress("Ledger")}
	Voting    = &votingContract{mustAddress("Voting")}
	Funding   = &fundingContract{mustAddress("Funding")}
	StakePool = mustAddress("StakePool")
	Runtime   = mustAddress("Runtime")
)

type (
	accessContract  struct{ Address vf.Address }
	ledgerContract  struct{ Address vf.Address }
	votingContract  struct{ Address vf.Address }
	fundingContract struct{ Address vf.Address }
)

func mustAddress(name string) vf.Address {
	if len(name) > len(vf.Address{}) {
		panic("builtin name too long: " + name)
	}
	return vf.BytesToAddress([]byte(name))
}

func (a *accessContract) WithState(state *state.State, sink solidity.EventSink) *access.Access {
	return access.New(a.Address, state, sink)
}

func (l *ledgerContract) WithState(state *state.State, sink solidity.EventSink) *ledger.Ledger {
	return ledger.New(l.Address, state, sink)
}

func (v *votingContract) WithState(state *state.State, sink solidity.EventSink) *voting.Voting {
	return voting.New(v.Address, state, Access.WithState(state, sink), sink)
}

func (f *fundingContract) WithState(state *state.State, sink solidity.EventSink) *funding.Funding {
	return funding.New(f.Address, StakePool, state, Access.WithState(state, sink), Ledger.WithState(state, sink), sink)
}

// Set is every subsystem bound to one state and one event sink.
type Set struct {
	Access  *access.Access
	Ledger  *ledger.Ledger
	Voting  *voting.Voting
	Funding *funding.Funding
}

// Bind binds all subsystems to state.
func Bind(state *state.State, sink solidity.EventSink) *Set {
	acc := Access.WithState(state, sink)
	led := Ledger.WithState(state, sink)
	return &Set{
		Access:  acc,
		Ledger:  led,
		Voting:  voting.New(Voting.Address, state, acc, sink),
		Funding: funding.New(Funding.Address, StakePool, state, acc, led, sink),
	}
}
