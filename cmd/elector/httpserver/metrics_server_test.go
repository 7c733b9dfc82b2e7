// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartMetricsServer(t *testing.T) {
	url, stop, err := StartMetricsServer("localhost:0")
	require.NoError(t, err)
	defer stop()
	assert.True(t, strings.HasSuffix(url, "/metrics"))

	res, err := http.Get(strings.TrimSuffix(url, "/metrics") + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// the noop metrics answer not found
	res, err = http.Get(url)
	require.NoError(t, err)
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestStopMetricsServer(t *testing.T) {
	url, stop, err := StartMetricsServer("localhost:0")
	require.NoError(t, err)
	stop()

	_, err = http.Get(strings.TrimSuffix(url, "/metrics") + "/healthz")
	assert.Error(t, err)
}

func TestStartMetricsServerBadAddr(t *testing.T) {
	_, _, err := StartMetricsServer("not-an-addr")
	assert.Error(t, err)
}
