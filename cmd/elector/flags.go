// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/infrablockchain/elector/log"
)

var (
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis file (YAML or JSON), the dev network when omitted",
	}
	scenarioFlag = cli.StringFlag{
		Name:  "scenario",
		Usage: "path to a scenario file (YAML or JSON)",
	}
	sessionsFlag = cli.Uint64Flag{
		Name:  "sessions",
		Usage: "number of sessions to rotate, overrides the scenario",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for election databases",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "save election state and events to disk",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 256,
		Usage: "number of storage slots kept in the read cache",
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
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	kindFlag = cli.StringFlag{
		Name:  "kind",
		Usage: "only list events of this kind",
	}
	fromEraFlag = cli.Uint64Flag{
		Name:  "from-era",
		Usage: "first era to list",
	}
	toEraFlag = cli.Uint64Flag{
		Name:  "to-era",
		Usage: "last era to list, unbounded when less than from-era",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Usage: "maximum number of events to list, 0 for all",
	}
	descFlag = cli.BoolFlag{
		Name:  "desc",
		Usage: "list newest events first",
	}
)
