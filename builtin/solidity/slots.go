// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/adysingh5711/VeriFund/vf"
)

// Uint256 is a wrapper for storage and retrieval of an uint256, similar to a uint256 state variable.
// Values exceeding 256 bits are truncated.
type Uint256 struct {
	ctx *Context
	pos vf.Bytes32
}

func NewUint256(ctx *Context, pos vf.Bytes32) *Uint256 {
	return &Uint256{ctx: ctx, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.ctx.state.GetStorage(u.ctx.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) {
	u.ctx.state.SetStorage(u.ctx.address, u.pos, vf.BytesToBytes32(value.Bytes()))
}

func (u *Uint256) Add(value *big.Int) error {
	v, err := u.Get()
	if err != nil {
		return err
	}
	u.Set(v.Add(v, value))
	return nil
}

// Uint64 is a wrapper for a counter style uint64 state variable.
type Uint64 struct {
	ctx *Context
	pos vf.Bytes32
}

func NewUint64(ctx *Context, pos vf.Bytes32) *Uint64 {
	return &Uint64{ctx: ctx, pos: pos}
}

func (u *Uint64) Get() (uint64, error) {
	storage, err := u.ctx.state.GetStorage(u.ctx.address, u.pos)
	if err != nil {
		return 0, err
	}
	return new(big.Int).SetBytes(storage.Bytes()).Uint64(), nil
}

func (u *Uint64) Set(value uint64) {
	u.ctx.state.SetStorage(u.ctx.address, u.pos, vf.Uint64ToBytes32(value))
}

// Increment adds one and returns the new value.
func (u *Uint64) Increment() (uint64, error) {
	v, err := u.Get()
	if err != nil {
		return 0, err
	}
	v++
	u.Set(v)
	return v, nil
}

// Bool is a wrapper for a boolean state variable.
type Bool struct {
	ctx *Context
	pos vf.Bytes32
}

func NewBool(ctx *Context, pos vf.Bytes32) *Bool {
	return &Bool{ctx: ctx, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.ctx.state.GetStorage(b.ctx.address, b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(value bool) {
	var storage vf.Bytes32
	if value {
		storage[31] = 1
	}
	b.ctx.state.SetStorage(b.ctx.address, b.pos, storage)
}

// Address is a wrapper for an address state variable.
type Address struct {
	ctx *Context
	pos vf.Bytes32
}

func NewAddress(ctx *Context, pos vf.Bytes32) *Address {
	return &Address{ctx: ctx, pos: pos}
}

func (a *Address) Get() (vf.Address, error) {
	storage, err := a.ctx.state.GetStorage(a.ctx.address, a.pos)
	if err != nil {
		return vf.Address{}, err
	}
	return vf.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr vf.Address) {
	a.ctx.state.SetStorage(a.ctx.address, a.pos, vf.BytesToBytes32(addr.Bytes()))
}

// Bytes32 is a wrapper for a [32]byte state variable.
type Bytes32 struct {
	ctx *Context
	pos vf.Bytes32
}

func NewBytes32(ctx *Context, pos vf.Bytes32) *Bytes32 {
	return &Bytes32{ctx: ctx, pos: pos}
}

func (b *Bytes32) Get() (vf.Bytes32, error) {
	return b.ctx.state.GetStorage(b.ctx.address, b.pos)
}

func (b *Bytes32) Set(value vf.Bytes32) {
	b.ctx.state.SetStorage(b.ctx.address, b.pos, value)
}
