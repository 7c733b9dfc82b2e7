// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/infrablockchain/elector/eventdb"
)

func eventsAction(ctx *cli.Context) error {
	initLogger(ctx)
	gene := selectGenesis(ctx)
	instanceDir := existingInstanceDir(ctx, gene)

	eventDB := openEventDB(instanceDir)
	defer eventDB.Close()

	exitCtx, cancel := handleExitSignal()
	defer cancel()

	return listEvents(exitCtx, os.Stdout, eventDB, eventFilter(ctx))
}

func eventFilter(ctx *cli.Context) *eventdb.EventFilter {
	filter := &eventdb.EventFilter{
		Kind:  ctx.String(kindFlag.Name),
		Order: eventdb.ASC,
	}
	if ctx.IsSet(fromEraFlag.Name) || ctx.IsSet(toEraFlag.Name) {
		filter.Range = &eventdb.Range{
			From: uint32(ctx.Uint64(fromEraFlag.Name)),
			To:   uint32(ctx.Uint64(toEraFlag.Name)),
		}
	}
	if ctx.Bool(descFlag.Name) {
		filter.Order = eventdb.DESC
	}
	if limit := ctx.Uint64(limitFlag.Name); limit > 0 {
		filter.Options = &eventdb.Options{Limit: limit}
	}
	return filter
}

func listEvents(ctx context.Context, w io.Writer, db *eventdb.EventDB, filter *eventdb.EventFilter) error {
	events, err := db.Filter(ctx, filter)
	if err != nil {
		return err
	}
	for _, ev := range events {
		fmt.Fprintf(w, "%6d  era %-4d session %-5d %-28s %s\n", ev.Seq, ev.Era, ev.Session, ev.Kind, ev.Payload)
	}
	return nil
}
