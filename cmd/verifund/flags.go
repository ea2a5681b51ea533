// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/adysingh5711/VeriFund/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the state and event databases",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the genesis YAML file (dev genesis if empty)",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /logs API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "keep state on disk under --data-dir instead of in memory",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the state database cache",
		Value: 1024,
	}

	// tx command
	methodFlag = cli.StringFlag{
		Name:  "method",
		Usage: "transaction method",
	}
	argsFlag = cli.StringFlag{
		Name:  "args",
		Value: "{}",
		Usage: "method arguments in JSON",
	}
	nonceFlag = cli.Uint64Flag{
		Name:  "nonce",
		Usage: "transaction nonce (queried from --api when omitted)",
	}
	apiURLFlag = cli.StringFlag{
		Name:  "api",
		Usage: "node API URL; when set the transaction is sent and its receipt printed",
	}
	keyFileFlag = cli.StringFlag{
		Name:  "keyfile",
		Usage: "file holding the hex encoded signing key",
	}

	// merkle command
	inputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "file with one address per line (stdin if empty)",
	}
)
