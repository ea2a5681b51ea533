// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/adysingh5711/VeriFund/client"
	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

func loadKey(keyFile string) (*ecdsa.PrivateKey, error) {
	if keyFile == "" {
		return nil, errors.Errorf("missing -%s", keyFileFlag.Name)
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, errors.Wrap(err, "read key file")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(string(data)), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "decode key")
	}
	return key, nil
}

// buildTx decodes argsJSON into the argument type of method and signs the transaction.
func buildTx(method, argsJSON string, nonce uint64, key *ecdsa.PrivateKey) (*tx.Transaction, error) {
	args, err := tx.NewArgs(method)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(argsJSON))
	dec.DisallowUnknownFields()
	if err := dec.Decode(args); err != nil {
		return nil, errors.Wrap(err, "decode args")
	}
	trx, err := tx.NewBuilder(method).Nonce(nonce).Args(args).Build()
	if err != nil {
		return nil, err
	}
	return tx.Sign(trx, key)
}

func txAction(ctx *cli.Context) error {
	key, err := loadKey(ctx.String(keyFileFlag.Name))
	if err != nil {
		return err
	}

	var c *client.Client
	if apiURL := ctx.String(apiURLFlag.Name); apiURL != "" {
		c = client.New(apiURL)
	}
	nonce := ctx.Uint64(nonceFlag.Name)
	if c != nil && !ctx.IsSet(nonceFlag.Name) {
		if nonce, err = c.Nonce(vf.Address(crypto.PubkeyToAddress(key.PublicKey))); err != nil {
			return err
		}
	}

	trx, err := buildTx(ctx.String(methodFlag.Name), ctx.String(argsFlag.Name), nonce, key)
	if err != nil {
		return err
	}
	if c == nil {
		fmt.Println(trx.Hex())
		return nil
	}

	receipt, err := c.SendTransaction(trx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(receipt)
}
