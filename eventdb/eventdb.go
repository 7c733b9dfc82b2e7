// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb stores election events in sqlite.
package eventdb

import (
	"context"
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// EventDB manages recorded events.
type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens an event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	// a memory db lives as long as its single connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close closes the event db.
func (db *EventDB) Close() error {
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

// Insert appends events in one transaction. Seq is assigned by the db.
func (db *EventDB) Insert(events []*Event) (err error) {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare("INSERT INTO event(era, session, kind, payload) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err = stmt.Exec(ev.Era, ev.Session, ev.Kind, string(ev.Payload)); err != nil {
			return errors.Wrapf(err, "insert %v", ev.Kind)
		}
	}
	return tx.Commit()
}

// Count returns the number of recorded events.
func (db *EventDB) Count(ctx context.Context) (n uint64, err error) {
	err = db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM event").Scan(&n)
	return
}

// Filter returns the events matching filter. A nil filter returns all events.
func (db *EventDB) Filter(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, "SELECT seq, era, session, kind, payload FROM event ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT seq, era, session, kind, payload FROM event WHERE 1"
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		stmt += " AND kind = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND era >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND era <= ? "
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			ev      Event
			payload string
		)
		if err := rows.Scan(&ev.Seq, &ev.Era, &ev.Session, &ev.Kind, &payload); err != nil {
			return nil, err
		}
		ev.Payload = []byte(payload)
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
