// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin"
	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/metrics"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metricTxCount = metrics.LazyLoadCounterVec("tx_count", []string{"method", "outcome"})
	metricTxApply = metrics.LazyLoadHistogram("tx_apply_ms", metrics.BucketTxApply)
)

// Runtime executes transactions against one state.
type Runtime struct {
	state    *state.State
	builtins *builtin.Set
	nonces   *solidity.Mapping[vf.Address, uint64]
	events   []*tx.Event
}

// New create a Runtime object.
func New(state *state.State) *Runtime {
	rt := &Runtime{state: state}
	rt.builtins = builtin.Bind(state, rt.collect)
	ctx := solidity.NewContext(builtin.Runtime, state, nil)
	rt.nonces = solidity.NewMapping[vf.Address, uint64](ctx, vf.BytesToBytes32([]byte("nonces")))
	return rt
}

func (rt *Runtime) State() *state.State    { return rt.state }
func (rt *Runtime) Builtins() *builtin.Set { return rt.builtins }

func (rt *Runtime) collect(ev *solidity.Event) {
	rt.events = append(rt.events, &tx.Event{
		Address: ev.Address,
		Name:    ev.Name,
		Topics:  ev.Topics,
		Data:    ev.Data,
	})
}

// NextNonce returns the nonce the next transaction of addr must carry.
func (rt *Runtime) NextNonce(addr vf.Address) (uint64, error) {
	n, err := rt.nonces.Get(addr)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get nonce")
	}
	return n, nil
}

// Execute executes a signed transaction at time now.
// Invalid transactions (bad signature, nonce or encoding) return a revert error and leave no trace.
// Reverted executions return a receipt with Reverted set. Other errors are fatal.
func (rt *Runtime) Execute(trx *tx.Transaction, now uint64) (*tx.Receipt, error) {
	if err := trx.Validate(); err != nil {
		return nil, reverts.New(reverts.InvalidArgument, "invalid transaction: %v", err)
	}
	origin, _ := trx.Origin()
	next, err := rt.NextNonce(origin)
	if err != nil {
		return nil, err
	}
	if trx.Nonce() != next {
		return nil, reverts.New(reverts.BadNonce, "want %d, got %d", next, trx.Nonce())
	}

	args, err := tx.NewArgs(trx.Method())
	if err != nil {
		return nil, reverts.New(reverts.UnknownMethod, "%s", trx.Method())
	}
	if _, empty := args.(*tx.NoArgs); !empty || len(trx.Args()) > 0 {
		if err := trx.DecodeArgs(args); err != nil {
			return nil, reverts.New(reverts.InvalidArgument, "%v", err)
		}
	}

	receipt, err := rt.call(origin, now, trx.Method(), args)
	if err != nil {
		return nil, err
	}
	// the nonce is consumed by reverted executions as well
	if err := rt.nonces.Set(origin, next+1); err != nil {
		return nil, errors.Wrap(err, "failed to set nonce")
	}
	receipt.TxID = trx.ID()
	return receipt, nil
}

// Call executes method with typed args on behalf of origin, without signature or nonce.
func (rt *Runtime) Call(origin vf.Address, now uint64, method string, args any) (*tx.Receipt, error) {
	return rt.call(origin, now, method, args)
}

func (rt *Runtime) call(origin vf.Address, now uint64, method string, args any) (*tx.Receipt, error) {
	start := time.Now()
	receipt := &tx.Receipt{
		Origin: origin,
		Method: method,
		Time:   now,
		Events: []*tx.Event{},
	}

	handler, ok := handlers[method]
	if !ok {
		return nil, reverts.New(reverts.UnknownMethod, "%s", method)
	}

	checkpoint := rt.state.NewCheckpoint()
	rt.events = rt.events[:0]
	err := handler(rt, origin, now, args)
	if err != nil {
		rt.state.RevertTo(checkpoint)
		if !reverts.IsRevertErr(err) {
			metricTxCount().AddWithLabel(1, map[string]string{"method": method, "outcome": "error"})
			return nil, errors.Wrapf(err, "execute %s", method)
		}
		receipt.Reverted = true
		receipt.Kind = string(reverts.KindOf(err))
		receipt.Error = err.Error()
		logger.Debug("tx reverted", "method", method, "origin", origin, "err", err)
		metricTxCount().AddWithLabel(1, map[string]string{"method": method, "outcome": "reverted"})
	} else {
		receipt.Events = append(receipt.Events, rt.events...)
		metricTxCount().AddWithLabel(1, map[string]string{"method": method, "outcome": "success"})
	}
	rt.events = nil
	metricTxApply().Observe(time.Since(start).Milliseconds())
	return receipt, nil
}
