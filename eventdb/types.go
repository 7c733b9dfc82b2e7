// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import "encoding/json"

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Event is a recorded election event.
type Event struct {
	Seq     uint64          `json:"seq"`
	Era     uint32          `json:"era"`
	Session uint32          `json:"session"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Range is an inclusive era range. To is ignored when less than From.
type Range struct {
	From uint32 `json:"from"`
	To   uint32 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// EventFilter selects events. Zero fields match everything.
type EventFilter struct {
	Kind    string   `json:"kind,omitempty"`
	Range   *Range   `json:"range,omitempty"`
	Order   Order    `json:"order,omitempty"`
	Options *Options `json:"options,omitempty"`
}
