// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/log"
)

var logger = log.WithContext("pkg", "eventdb")

// Sink records emitted events at the current era and session.
type Sink struct {
	db *EventDB

	mu      sync.Mutex
	era     uint32
	session uint32
	err     error
}

var _ election.Emitter = (*Sink)(nil)

func (db *EventDB) NewSink() *Sink {
	return &Sink{db: db}
}

// Seek sets the position attached to subsequent events.
func (s *Sink) Seek(era election.EraIndex, session election.SessionIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.era, s.session = uint32(era), uint32(session)
}

// Emit implements election.Emitter. Failures are logged and kept for Err.
func (s *Sink) Emit(ev election.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(ev)
	if err == nil {
		err = s.db.Insert([]*Event{{
			Era:     s.era,
			Session: s.session,
			Kind:    ev.Kind(),
			Payload: payload,
		}})
	}
	if err != nil {
		logger.Warn("failed to record event", "kind", ev.Kind(), "err", err)
		if s.err == nil {
			s.err = errors.Wrapf(err, "record %v", ev.Kind())
		}
	}
}

// Err returns the first recording failure.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
