// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/infrablockchain/elector/infra"
)

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := selectGenesis(ctx)
	instanceDir := existingInstanceDir(ctx, gene)

	mainDB := openMainDB(instanceDir)
	defer mainDB.Close()
	eventDB := openEventDB(instanceDir)
	defer eventDB.Close()

	h, err := openHost(mainDB, eventDB, gene, ctx.Int(cacheFlag.Name), false)
	if err != nil {
		return err
	}
	return printStatus(os.Stdout, h)
}

func joinAddresses(addrs []infra.Address) string {
	if len(addrs) == 0 {
		return "-"
	}
	return strings.Join(infra.Addresses(addrs).Strings(), "\n                ")
}

// printStatus writes the election state in a human readable form.
func printStatus(w io.Writer, h *host) error {
	e := h.election

	era, hasEra, err := e.CurrentEra()
	if err != nil {
		return err
	}
	eraStr := "-"
	if hasEra {
		start, _, err := e.StartSessionIndex(era)
		if err != nil {
			return err
		}
		eraStr = fmt.Sprintf("%v (from session %v)", era, start)
	}
	total, seedTrustNum, err := e.NumberOfValidators()
	if err != nil {
		return err
	}
	force, err := e.ForceEra()
	if err != nil {
		return err
	}
	pool, err := e.PoolStatus()
	if err != nil {
		return err
	}
	threshold, err := e.MinVotePointsThreshold()
	if err != nil {
		return err
	}
	seedTrustPool, err := e.SeedTrustPool()
	if err != nil {
		return err
	}
	seedTrust, err := e.SeedTrustValidators()
	if err != nil {
		return err
	}
	potValidators, err := e.PotValidators()
	if err != nil {
		return err
	}
	ledger, err := e.PotValidatorPool()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, `Election
    Session     %v
    Era         %v
    Validators  %v total, %v seed trust, %v per era
    Modes       force %v, pool %v
    Threshold   %v
    Current     %v
    Queued      %v
    SeedTrust   %v
    Pool        %v
    PoT         %v
`,
		h.rotator.Index(),
		eraStr,
		total, seedTrustNum, e.SessionsPerEra(),
		force, pool,
		threshold,
		joinAddresses(h.rotator.Validators()),
		joinAddresses(h.rotator.Queued()),
		joinAddresses(seedTrust),
		joinAddresses(seedTrustPool),
		joinAddresses(potValidators),
	)

	fmt.Fprintf(w, "Ledger          %v candidates, %v points\n", ledger.Counts(), ledger.TotalPoints().Dec())
	for _, entry := range ledger.Status {
		weight, _, err := h.collector.VoteInfo(entry.Who)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "    %v  points %-10v tx weight %v\n", entry.Who, entry.Points, weight)
	}

	electionKeys, err := h.countKeys(electionBucket)
	if err != nil {
		return err
	}
	potKeys, err := h.countKeys(potBucket)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Storage         %v election keys, %v pot keys\n", electionKeys, potKeys)
	return nil
}
