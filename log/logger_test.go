// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler(t *testing.T) {
	var out bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(slog.LevelInfo)

	l := NewLogger(NewTerminalHandlerWithLevel(&out, &lvl, false))
	l.Debug("hidden", "k", 1)
	assert.Empty(t, out.String())

	l.Info("new era triggered", "era", 3, "who", "a b")
	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO "))
	assert.Contains(t, line, "new era triggered")
	assert.Contains(t, line, "era=3")
	assert.Contains(t, line, `who="a b"`)
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestWithContextFollowsRoot(t *testing.T) {
	pkgLogger := WithContext("pkg", "test")

	var out bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(LevelTrace)
	prev := Root()
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&out, &lvl, false)))
	defer SetDefault(prev)

	pkgLogger.With("era", 1).Trace("hello")
	assert.Contains(t, out.String(), "pkg=test")
	assert.Contains(t, out.String(), "era=1")
	assert.True(t, pkgLogger.Enabled(t.Context(), LevelTrace))
}

func TestJSONHandlerReplace(t *testing.T) {
	var out bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(LevelTrace)

	l := NewLogger(JSONHandlerWithLevel(&out, &lvl))
	l.Info("totals", "points", uint256.NewInt(42), "big", big.NewInt(7), "nil", (*uint256.Int)(nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "42", rec["points"])
	assert.Equal(t, "7", rec["big"])
	assert.Equal(t, "<nil>", rec["nil"])
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, LevelTrace, FromLegacyLevel(5))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
}

func TestDiscardHandler(t *testing.T) {
	l := NewLogger(DiscardHandler())
	assert.False(t, l.Enabled(t.Context(), LevelCrit))
	l.Error("dropped")
}
