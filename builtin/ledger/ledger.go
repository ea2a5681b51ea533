// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

var logger = log.WithContext("pkg", "ledger")

var (
	slotBalances = nameToSlot("balances")
	slotSupplies = nameToSlot("supplies")
)

// Native is the token address of the native currency.
var Native = vf.Address{}

// Ledger keeps multi-token balances and moves funds between holders.
type Ledger struct {
	ctx      *solidity.Context
	balances *solidity.Mapping[vf.Bytes32, *big.Int]
	supplies *solidity.Mapping[vf.Address, *big.Int]
}

// New create a new instance.
func New(addr vf.Address, state *state.State, sink solidity.EventSink) *Ledger {
	ctx := solidity.NewContext(addr, state, sink)
	return &Ledger{
		ctx:      ctx,
		balances: solidity.NewMapping[vf.Bytes32, *big.Int](ctx, slotBalances),
		supplies: solidity.NewMapping[vf.Address, *big.Int](ctx, slotSupplies),
	}
}

func balanceKey(token, holder vf.Address) vf.Bytes32 {
	return vf.Blake2b(token.Bytes(), holder.Bytes())
}

// Balance returns the balance of holder in token.
func (l *Ledger) Balance(token, holder vf.Address) (*big.Int, error) {
	bal, err := l.balances.Get(balanceKey(token, holder))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return bal, nil
}

// TotalSupply returns the minted amount of token.
func (l *Ledger) TotalSupply(token vf.Address) (*big.Int, error) {
	supply, err := l.supplies.Get(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get supply")
	}
	return supply, nil
}

func (l *Ledger) setBalance(token, holder vf.Address, amount *big.Int) error {
	if err := l.balances.Set(balanceKey(token, holder), amount); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	return nil
}

// Mint credits amount of token to holder. Only genesis mints.
func (l *Ledger) Mint(token, to vf.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.New(reverts.InvalidArgument, "negative amount")
	}
	bal, err := l.Balance(token, to)
	if err != nil {
		return err
	}
	if err := l.setBalance(token, to, bal.Add(bal, amount)); err != nil {
		return err
	}
	supply, err := l.TotalSupply(token)
	if err != nil {
		return err
	}
	if err := l.supplies.Set(token, supply.Add(supply, amount)); err != nil {
		return errors.Wrap(err, "failed to set supply")
	}
	return nil
}

// Transfer moves amount of token from one holder to another.
// A zero amount is a no-op.
func (l *Ledger) Transfer(token, from, to vf.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return reverts.New(reverts.InvalidArgument, "invalid amount")
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	if to.IsZero() {
		return reverts.New(reverts.InvalidArgument, "transfer to zero address")
	}

	fromBal, err := l.Balance(token, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return reverts.New(reverts.InsufficientBalance, "balance %v < %v", fromBal, amount)
	}
	toBal, err := l.Balance(token, to)
	if err != nil {
		return err
	}
	if err := l.setBalance(token, from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	if err := l.setBalance(token, to, toBal.Add(toBal, amount)); err != nil {
		return err
	}

	logger.Trace("transfer", "token", token, "from", from, "to", to, "amount", amount)
	return l.ctx.Emit("Transfer", &transferEvent{
		Token:  token.String(),
		From:   from.String(),
		To:     to.String(),
		Amount: amount.String(),
	}, vf.BytesToBytes32(from.Bytes()), vf.BytesToBytes32(to.Bytes()))
}

type transferEvent struct {
	Token  string `json:"token"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func nameToSlot(name string) vf.Bytes32 {
	return vf.BytesToBytes32([]byte(name))
}
