// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SessionIndex identifies a rotation unit. It is supplied by the host.
type SessionIndex uint32

// EraIndex identifies a planning epoch spanning several sessions.
type EraIndex uint32

// Bytes returns the big endian form, used as mapping key.
func (e EraIndex) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(e))
	return b[:]
}

func (e EraIndex) next() EraIndex {
	if e == math.MaxUint32 {
		return e
	}
	return e + 1
}

func (s SessionIndex) sub(o SessionIndex) uint32 {
	if s < o {
		return 0
	}
	return uint32(s - o)
}

// Forcing is the mode of era forcing.
type Forcing uint8

const (
	// NotForcing lets the elapsed session count decide.
	NotForcing Forcing = iota
	// ForceNew forces a new era once, then resets to NotForcing.
	ForceNew
	// ForceNone avoids a new era indefinitely.
	ForceNone
	// ForceAlways forces a new era at every session boundary.
	ForceAlways
)

var forcingNames = [...]string{"NotForcing", "ForceNew", "ForceNone", "ForceAlways"}

func (f Forcing) String() string {
	if int(f) < len(forcingNames) {
		return forcingNames[f]
	}
	return fmt.Sprintf("Forcing(%d)", uint8(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Forcing) MarshalText() ([]byte, error) {
	if int(f) >= len(forcingNames) {
		return nil, fmt.Errorf("invalid forcing mode %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Forcing) UnmarshalText(text []byte) error {
	for i, name := range forcingNames {
		if name == string(text) {
			*f = Forcing(i)
			return nil
		}
	}
	return fmt.Errorf("unknown forcing mode %q", text)
}

// Pool is the composition of the validator pool.
type Pool uint8

const (
	// PoolSeedTrust only seed trust validators are elected.
	PoolSeedTrust Pool = iota
	// PoolAll seed trust and proof-of-transaction validators are elected.
	PoolAll
)

var poolNames = [...]string{"SeedTrust", "All"}

func (p Pool) String() string {
	if int(p) < len(poolNames) {
		return poolNames[p]
	}
	return fmt.Sprintf("Pool(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Pool) MarshalText() ([]byte, error) {
	if int(p) >= len(poolNames) {
		return nil, fmt.Errorf("invalid pool status %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pool) UnmarshalText(text []byte) error {
	for i, name := range poolNames {
		if name == string(text) {
			*p = Pool(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pool status %q", text)
}

// ParaID identifies a parachain for reward aggregation.
type ParaID uint32

// SystemTokenID identifies the token a fee was paid in.
type SystemTokenID struct {
	ParaID   ParaID
	PalletID uint32
	AssetID  uint32
}
