// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// elector simulates validator election and era rotation.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version       string
	gitCommit     string
	gitTag        string
	copyrightYear string
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
		Name:      "Elector",
		Usage:     "Validator election and era rotation simulator",
		Copyright: fmt.Sprintf("2025-%s InfraBlockchain developers", copyrightYear),
		Commands: []cli.Command{
			{
				Name:  "simulate",
				Usage: "rotate sessions from genesis, applying a scenario",
				Flags: []cli.Flag{
					genesisFlag,
					scenarioFlag,
					sessionsFlag,
					dataDirFlag,
					persistFlag,
					cacheFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: simulateAction,
			},
			{
				Name:  "inspect",
				Usage: "print the election state of a persisted simulation",
				Flags: []cli.Flag{
					genesisFlag,
					dataDirFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: inspectAction,
			},
			{
				Name:  "events",
				Usage: "list the events recorded by a persisted simulation",
				Flags: []cli.Flag{
					genesisFlag,
					dataDirFlag,
					kindFlag,
					fromEraFlag,
					toEraFlag,
					limitFlag,
					descFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: eventsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
