// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/adysingh5711/VeriFund/vf"
)

func keygenAction(ctx *cli.Context) error {
	key, err := crypto.GenerateKey()
	if err != nil {
		return errors.Wrap(err, "generate key")
	}
	keyHex := hex.EncodeToString(crypto.FromECDSA(key))
	addr := vf.Address(crypto.PubkeyToAddress(key.PublicKey))

	if path := ctx.String(keyFileFlag.Name); path != "" {
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("key file [%v] already exists", path)
		}
		if err := os.WriteFile(path, []byte(keyHex), 0o600); err != nil {
			return errors.Wrap(err, "write key file")
		}
		fmt.Println("Address:", addr)
		return nil
	}
	fmt.Println("Address:    ", addr)
	fmt.Println("Private key:", keyHex)
	return nil
}
