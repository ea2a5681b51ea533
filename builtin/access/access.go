// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access

import (
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

var logger = log.WithContext("pkg", "access")

var (
	slotCapabilities = nameToSlot("capabilities")
	slotAdminCount   = nameToSlot("admin-count")
	slotPaused       = nameToSlot("paused")
)

// Access keeps the capability table and the global pause flag.
type Access struct {
	ctx          *solidity.Context
	capabilities *solidity.Mapping[vf.Bytes32, bool]
	adminCount   *solidity.Uint64
	paused       *solidity.Bool
}

// New create a new instance.
func New(addr vf.Address, state *state.State, sink solidity.EventSink) *Access {
	ctx := solidity.NewContext(addr, state, sink)
	return &Access{
		ctx:          ctx,
		capabilities: solidity.NewMapping[vf.Bytes32, bool](ctx, slotCapabilities),
		adminCount:   solidity.NewUint64(ctx, slotAdminCount),
		paused:       solidity.NewBool(ctx, slotPaused),
	}
}

func capabilityKey(who vf.Address, c Capability) vf.Bytes32 {
	return vf.Blake2b(who.Bytes(), []byte(c))
}

// HasCapability reports whether who holds the capability.
func (a *Access) HasCapability(who vf.Address, c Capability) (bool, error) {
	ok, err := a.capabilities.Get(capabilityKey(who, c))
	if err != nil {
		return false, errors.Wrap(err, "failed to get capability")
	}
	return ok, nil
}

// Require reverts with Unauthorized unless who holds the capability.
func (a *Access) Require(who vf.Address, c Capability) error {
	ok, err := a.HasCapability(who, c)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.New(reverts.Unauthorized, "%v lacks %s capability", who, c)
	}
	return nil
}

// AdminCount returns the number of admins.
func (a *Access) AdminCount() (uint64, error) {
	n, err := a.adminCount.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get admin count")
	}
	return n, nil
}

// Grant gives who the capability without any permission check.
// It is used by genesis and by subsystems granting capabilities as a side effect.
// It returns false if who already held it.
func (a *Access) Grant(who vf.Address, c Capability) (bool, error) {
	if who.IsZero() {
		return false, reverts.New(reverts.InvalidArgument, "zero address")
	}
	held, err := a.HasCapability(who, c)
	if err != nil || held {
		return false, err
	}
	if err := a.capabilities.Set(capabilityKey(who, c), true); err != nil {
		return false, errors.Wrap(err, "failed to set capability")
	}
	if c == Admin {
		if _, err := a.adminCount.Increment(); err != nil {
			return false, errors.Wrap(err, "failed to update admin count")
		}
	}
	logger.Debug("capability granted", "account", who, "capability", string(c))
	return true, nil
}

// GrantCapability is the admin entry point for granting.
func (a *Access) GrantCapability(sender, who vf.Address, c Capability) error {
	if err := a.Require(sender, Admin); err != nil {
		return err
	}
	granted, err := a.Grant(who, c)
	if err != nil || !granted {
		return err
	}
	return a.ctx.Emit("CapabilityGranted", &capabilityEvent{who.String(), string(c), sender.String()}, vf.BytesToBytes32(who.Bytes()))
}

// RevokeCapability is the admin entry point for revoking.
// The last admin can not be revoked.
func (a *Access) RevokeCapability(sender, who vf.Address, c Capability) error {
	if err := a.Require(sender, Admin); err != nil {
		return err
	}
	held, err := a.HasCapability(who, c)
	if err != nil || !held {
		return err
	}
	if c == Admin {
		n, err := a.AdminCount()
		if err != nil {
			return err
		}
		if n <= 1 {
			return reverts.New(reverts.LastAdmin, "can not revoke the last admin")
		}
		a.adminCount.Set(n - 1)
	}
	if err := a.capabilities.Set(capabilityKey(who, c), false); err != nil {
		return errors.Wrap(err, "failed to set capability")
	}
	return a.ctx.Emit("CapabilityRevoked", &capabilityEvent{who.String(), string(c), sender.String()}, vf.BytesToBytes32(who.Bytes()))
}

// IsPaused returns the global pause flag.
func (a *Access) IsPaused() (bool, error) {
	paused, err := a.paused.Get()
	if err != nil {
		return false, errors.Wrap(err, "failed to get paused")
	}
	return paused, nil
}

// RequireNotPaused reverts with Paused if the system is paused.
// Every mutating entry point of the subsystems calls it first.
func (a *Access) RequireNotPaused() error {
	paused, err := a.IsPaused()
	if err != nil {
		return err
	}
	if paused {
		return reverts.New(reverts.Paused, "")
	}
	return nil
}

// Pause sets the global pause flag. Admin only.
func (a *Access) Pause(sender vf.Address) error {
	return a.setPaused(sender, true, "Paused")
}

// Unpause clears the global pause flag. Admin only.
func (a *Access) Unpause(sender vf.Address) error {
	return a.setPaused(sender, false, "Unpaused")
}

func (a *Access) setPaused(sender vf.Address, paused bool, event string) error {
	if err := a.Require(sender, Admin); err != nil {
		return err
	}
	current, err := a.IsPaused()
	if err != nil {
		return err
	}
	if current == paused {
		return nil
	}
	a.paused.Set(paused)
	logger.Info("pause flag changed", "paused", paused, "sender", sender)
	return a.ctx.Emit(event, &pauseEvent{sender.String()})
}

func nameToSlot(name string) vf.Bytes32 {
	return vf.BytesToBytes32([]byte(name))
}
