// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/infrablockchain/elector/cmd/elector/httpserver"
	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/eventdb"
	"github.com/infrablockchain/elector/log"
	"github.com/infrablockchain/elector/lvldb"
	"github.com/infrablockchain/elector/metrics"
)

func simulateAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	initLogger(ctx)
	gene := selectGenesis(ctx)
	scenario, err := loadScenario(ctx)
	if err != nil {
		return err
	}

	var (
		mainDB      *lvldb.LevelDB
		eventDB     *eventdb.EventDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(instanceDir)
		eventDB = openEventDB(instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		eventDB = openMemEventDB()
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()
	defer func() { log.Info("closing event database..."); eventDB.Close() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		log.Info("metrics server started", "url", url)
		defer closeFunc()
	}

	h, err := openHost(mainDB, eventDB, gene, ctx.Int(cacheFlag.Name), true)
	if err != nil {
		return err
	}
	printStartupMessage(gene.Name(), gene.ID().AbbrevString(), instanceDir, h.rotator.Index(), scenario.Sessions)

	exitCtx, cancel := handleExitSignal()
	defer cancel()

	bar := pb.New64(int64(scenario.Sessions)).SetMaxWidth(90)
	bar.Output = os.Stderr
	bar.Start()

	progress := make(chan election.SessionIndex, 16)
	g, gctx := errgroup.WithContext(exitCtx)
	g.Go(func() error {
		defer close(progress)
		return h.run(gctx, scenario, progress)
	})
	g.Go(func() error {
		for range progress {
			bar.Increment()
		}
		bar.Finish()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return printStatus(os.Stdout, h)
}

func printStartupMessage(network, id, instanceDir string, from election.SessionIndex, sessions uint32) {
	fmt.Printf(`Starting simulation
    Network     [ %v %v ]
    Instance    [ %v ]
    Sessions    [ %v -> %v ]
`,
		network, id,
		instanceDir,
		from, uint32(from)+sessions)
}
