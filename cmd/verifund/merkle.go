// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/adysingh5711/VeriFund/builtin/eligibility"
	"github.com/adysingh5711/VeriFund/vf"
)

type allowList struct {
	Root   vf.Bytes32                   `json:"root"`
	Proofs map[string]eligibility.Proof `json:"proofs"`
}

// buildAllowList reads one address per line. Blank lines and lines starting with # are skipped.
func buildAllowList(r io.Reader) (*allowList, error) {
	var addrs []vf.Address
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		addr, err := vf.ParseAddress(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		addrs = append(addrs, *addr)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read addresses")
	}

	tree, err := eligibility.NewTree(addrs)
	if err != nil {
		return nil, err
	}
	list := &allowList{
		Root:   tree.Root(),
		Proofs: make(map[string]eligibility.Proof, tree.Len()),
	}
	for _, addr := range addrs {
		proof, _ := tree.Proof(addr)
		if proof == nil {
			proof = eligibility.Proof{}
		}
		list.Proofs[addr.String()] = proof
	}
	return list, nil
}

func merkleAction(ctx *cli.Context) error {
	in := io.Reader(os.Stdin)
	if path := ctx.String(inputFlag.Name); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		in = f
	}
	list, err := buildAllowList(in)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
