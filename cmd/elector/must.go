// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/infrablockchain/elector/eventdb"
	"github.com/infrablockchain/elector/genesis"
	"github.com/infrablockchain/elector/log"
	"github.com/infrablockchain/elector/lvldb"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name))))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return &level
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".elector")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet()
	}
	gene, err := genesis.LoadFile(path)
	if err != nil {
		fatal(err)
	}
	return gene
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func instanceDirOf(dataDir string, gene *genesis.Genesis) string {
	return filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	instanceDir := instanceDirOf(makeDataDir(ctx), gene)
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

// existingInstanceDir returns the instance dir of a previous persisted run.
func existingInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	instanceDir := instanceDirOf(ctx.String(dataDirFlag.Name), gene)
	if _, err := os.Stat(instanceDir); err != nil {
		fatal(fmt.Sprintf("no data for %v in [%v], run simulate with -%s first", gene.Name(), instanceDir, persistFlag.Name))
	}
	return instanceDir
}

func openMainDB(instanceDir string) *lvldb.LevelDB {
	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{CacheSize: 32, OpenFilesCacheCapacity: 64})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open main database: %v", err))
	}
	return db
}

func openEventDB(instanceDir string) *eventdb.EventDB {
	path := filepath.Join(instanceDir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open event database [%v]: %v", path, err))
	}
	return db
}

func openMemEventDB() *eventdb.EventDB {
	db, err := eventdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open event database: %v", err))
	}
	return db
}

func loadScenario(ctx *cli.Context) (*genesis.Scenario, error) {
	var scenario genesis.Scenario
	if path := ctx.String(scenarioFlag.Name); path != "" {
		s, err := genesis.LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenario = *s
	}
	if ctx.IsSet(sessionsFlag.Name) {
		scenario.Sessions = uint32(ctx.Uint64(sessionsFlag.Name))
	}
	if scenario.Sessions == 0 {
		return nil, errors.New("nothing to simulate, set a scenario or the number of sessions")
	}
	return &scenario, nil
}

// handleExitSignal returns a context canceled on interrupt or termination.
func handleExitSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
