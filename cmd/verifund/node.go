// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/adysingh5711/VeriFund/api"
	"github.com/adysingh5711/VeriFund/co"
	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/genesis"
	"github.com/adysingh5711/VeriFund/lvldb"
	"github.com/adysingh5711/VeriFund/metrics"
	"github.com/adysingh5711/VeriFund/sequencer"
	"github.com/adysingh5711/VeriFund/state"
)

const clockCheckInterval = 10 * time.Minute

func nodeAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	if _, err := initLogger(ctx); err != nil {
		return err
	}

	cfg, err := loadGenesisConfig(ctx)
	if err != nil {
		return err
	}

	var (
		mainDB  *lvldb.LevelDB
		eventDB *eventdb.EventDB
		dataDir = "Memory"
	)
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	if ctx.Bool(persistFlag.Name) {
		if dataDir, err = makeDataDir(ctx); err != nil {
			return err
		}
		if mainDB, err = lvldb.New(filepath.Join(dataDir, "main.db"), lvldb.Options{CacheSize: cacheMB / 2, OpenFilesCacheCapacity: 500}); err != nil {
			return errors.Wrap(err, "open main database")
		}
		if eventDB, err = eventdb.New(filepath.Join(dataDir, "events.db")); err != nil {
			mainDB.Close()
			return errors.Wrap(err, "open event database")
		}
	} else {
		if mainDB, err = lvldb.NewMem(); err != nil {
			return errors.Wrap(err, "open main database")
		}
		if eventDB, err = eventdb.NewMem(); err != nil {
			mainDB.Close()
			return errors.Wrap(err, "open event database")
		}
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	// one cache entry per storage slot, roughly 256 bytes each
	stater := state.NewStater(mainDB, cacheMB/2*4096)
	gene, err := genesis.Apply(stater, cfg)
	if err != nil {
		return errors.Wrap(err, "apply genesis")
	}

	seq, err := sequencer.New(stater, eventDB, sequencer.Options{})
	if err != nil {
		return errors.Wrap(err, "init sequencer")
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		logger.Info("metrics server started", "url", url)
	}

	apiHandler, apiCloser := api.New(seq, eventDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
	})
	defer func() { logger.Info("closing API..."); apiCloser() }()

	apiURL, srvCloser, err := startAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(gene, seq, dataDir, apiURL)

	exitCtx := handleExitSignal()
	eg, egCtx := errgroup.WithContext(exitCtx)
	eg.Go(func() error {
		return seq.Run(egCtx)
	})
	eg.Go(func() error {
		ticker := time.NewTicker(clockCheckInterval)
		defer ticker.Stop()
		checkClockOffset()
		for {
			select {
			case <-egCtx.Done():
				return nil
			case <-ticker.C:
				checkClockOffset()
				hit, miss := stater.CacheStats()
				logger.Debug("state cache stats", "hit", hit, "miss", miss)
			}
		}
	})
	return eg.Wait()
}

func loadGenesisConfig(ctx *cli.Context) (*genesis.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.DevConfig(), nil
	}
	cfg, err := genesis.LoadConfig(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load genesis config [%v]", path)
	}
	return cfg, nil
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func startAPIServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Shutdown(context.Background())
		goes.Wait()
	}, nil
}

func startMetricsServer(addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics API addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	handler := handlers.CompressHandler(router)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/metrics", func() {
		srv.Close()
		goes.Wait()
	}, nil
}

func printStartupMessage(gene *genesis.Genesis, seq *sequencer.Sequencer, dataDir, apiURL string) {
	head := seq.Head()
	fmt.Printf(`Starting %v
    Genesis      [ %v @%v ]
    Head         [ #%v @%v ]
    Data dir     [ %v ]
    API portal   [ %v ]
`,
		makeName("VeriFund", fullVersion()),
		gene.ID, time.Unix(int64(gene.LaunchTime), 0).UTC(),
		head.Seq, time.Unix(int64(head.Time), 0).UTC(),
		dataDir,
		apiURL)
	if dataDir == "Memory" {
		printDevAccounts()
	}
}

func printDevAccounts() {
	var b strings.Builder
	b.WriteString("    Dev accounts\n")
	for _, a := range genesis.DevAccounts() {
		fmt.Fprintf(&b, "      %v\n", a.Address)
	}
	fmt.Print(b.String())
}
