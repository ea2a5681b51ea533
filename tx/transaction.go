// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/hex"
	"io"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/vf"
)

// MaxArgsSize bounds the encoded arguments of one transaction.
const MaxArgsSize = 64 * 1024

// Transaction is an immutable signed call of one method.
type Transaction struct {
	body body

	cache struct {
		signingHash atomic.Value
		origin      atomic.Value
		id          atomic.Value
	}
}

type body struct {
	Nonce     uint64
	Method    string
	Args      []byte
	Signature []byte
}

// Nonce returns the sender sequence number.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Method returns the invoked method name.
func (t *Transaction) Method() string {
	return t.body.Method
}

// Args returns the rlp encoded arguments.
func (t *Transaction) Args() []byte {
	return append([]byte(nil), t.body.Args...)
}

// DecodeArgs decodes the arguments into val.
func (t *Transaction) DecodeArgs(val any) error {
	if err := rlp.DecodeBytes(t.body.Args, val); err != nil {
		return errors.Wrap(err, "decode args")
	}
	return nil
}

// Signature returns signature.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.body.Signature...)
}

// SigningHash returns hash of tx excludes signature.
func (t *Transaction) SigningHash() (hash vf.Bytes32) {
	if cached := t.cache.signingHash.Load(); cached != nil {
		return cached.(vf.Bytes32)
	}
	defer func() { t.cache.signingHash.Store(hash) }()

	return vf.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			t.body.Nonce,
			t.body.Method,
			t.body.Args,
		})
	})
}

// Origin extracts address of the signer from the signature.
func (t *Transaction) Origin() (vf.Address, error) {
	if cached := t.cache.origin.Load(); cached != nil {
		return cached.(vf.Address), nil
	}
	if len(t.body.Signature) != crypto.SignatureLength {
		return vf.Address{}, errors.New("invalid signature length")
	}
	pub, err := crypto.SigToPub(t.SigningHash().Bytes(), t.body.Signature)
	if err != nil {
		return vf.Address{}, errors.Wrap(err, "recover origin")
	}
	origin := vf.Address(crypto.PubkeyToAddress(*pub))
	t.cache.origin.Store(origin)
	return origin, nil
}

// ID returns id of tx, blake2b(signingHash, origin).
// It returns zero Bytes32 if the signature is invalid.
func (t *Transaction) ID() (id vf.Bytes32) {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(vf.Bytes32)
	}
	defer func() { t.cache.id.Store(id) }()

	origin, err := t.Origin()
	if err != nil {
		return
	}
	hash := t.SigningHash()
	return vf.Blake2b(hash[:], origin[:])
}

// WithSignature create a new tx with signature set.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	newTx := Transaction{
		body: t.body,
	}
	newTx.body.Signature = append([]byte(nil), sig...)
	return &newTx
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{body: body}
	return nil
}

// MarshalBinary returns the canonical rlp encoding.
func (t *Transaction) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(t)
}

// UnmarshalBinary decodes the canonical rlp encoding.
func (t *Transaction) UnmarshalBinary(b []byte) error {
	return rlp.DecodeBytes(b, t)
}

// Size returns the encoded size.
func (t *Transaction) Size() int {
	b, _ := t.MarshalBinary()
	return len(b)
}

// Validate checks the fields that do not depend on state.
func (t *Transaction) Validate() error {
	if t.body.Method == "" {
		return errors.New("empty method")
	}
	if len(t.body.Args) > MaxArgsSize {
		return errors.New("args too large")
	}
	if _, err := t.Origin(); err != nil {
		return err
	}
	return nil
}

// Hex returns the 0x prefixed hex of the encoding.
func (t *Transaction) Hex() string {
	b, _ := t.MarshalBinary()
	return "0x" + hex.EncodeToString(b)
}

// ParseHex decodes a 0x prefixed hex encoded transaction.
func ParseHex(s string) (*Transaction, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "decode hex")
	}
	var t Transaction
	if err := t.UnmarshalBinary(b); err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return &t, nil
}
