// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

// Event is a log record emitted by a builtin subsystem.
type Event struct {
	Address vf.Address
	Name    string
	Topics  []vf.Bytes32
	Data    json.RawMessage
}

// EventSink receives events emitted during execution.
type EventSink func(ev *Event)

// Context binds a builtin subsystem to its storage address within a state.
type Context struct {
	address vf.Address
	state   *state.State
	emit    EventSink
}

func NewContext(address vf.Address, state *state.State, emit EventSink) *Context {
	return &Context{
		address: address,
		state:   state,
		emit:    emit,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) Address() vf.Address {
	return c.address
}

// Emit records an event with up to two indexed topics and a json payload.
func (c *Context) Emit(name string, data any, topics ...vf.Bytes32) error {
	if len(topics) > 2 {
		return errors.New("too many topics")
	}
	if c.emit == nil {
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}
	c.emit(&Event{
		Address: c.address,
		Name:    name,
		Topics:  topics,
		Data:    payload,
	})
	return nil
}
