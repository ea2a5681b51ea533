// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/adysingh5711/VeriFund/log"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "verifund")

	nodeFlags = []cli.Flag{
		dataDirFlag,
		configFlag,
		apiAddrFlag,
		apiCorsFlag,
		apiLogsLimitFlag,
		enableAPILogsFlag,
		enableMetricsFlag,
		metricsAddrFlag,
		verbosityFlag,
		jsonLogsFlag,
		persistFlag,
		cacheFlag,
	}
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "VeriFund",
		Usage:     "Quadratic voting and milestone escrow node",
		Copyright: "2026 The VeriFund developers",
		Flags:     nodeFlags,
		Action:    nodeAction,
		Commands: []cli.Command{
			{
				Name:   "node",
				Usage:  "run the sequencer and API server",
				Flags:  nodeFlags,
				Action: nodeAction,
			},
			{
				Name:   "merkle",
				Usage:  "build the eligibility root and proofs of an address list",
				Flags:  []cli.Flag{inputFlag},
				Action: merkleAction,
			},
			{
				Name:   "tx",
				Usage:  "build and sign a transaction, printing it in hex or sending it",
				Flags:  []cli.Flag{methodFlag, argsFlag, nonceFlag, keyFileFlag, apiURLFlag},
				Action: txAction,
			},
			{
				Name:   "keygen",
				Usage:  "generate a new signing key",
				Flags:  []cli.Flag{keyFileFlag},
				Action: keygenAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
