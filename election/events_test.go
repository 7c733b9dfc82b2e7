// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/infrablockchain/elector/log"
)

func TestMultiEmitter(t *testing.T) {
	a, b := &recordingEmitter{}, &recordingEmitter{}
	MultiEmitter(a, b).Emit(NewEraTriggered{EraIndex: 3})
	MultiEmitter(a).Emit(EmptyPotValidatorPool{})

	assert.Equal(t, []string{"NewEraTriggered", "EmptyPotValidatorPool"}, a.kinds())
	assert.Equal(t, []string{"NewEraTriggered"}, b.kinds())
}

func TestLogEmitter(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.NewLogger(log.JSONHandler(&buf)))
	t.Cleanup(func() { SetLogger(log.WithContext("pkg", "election")) })

	LogEmitter{}.Emit(ForceEra{Old: NotForcing, New: ForceNew})
	assert.Contains(t, buf.String(), "ForceEra")
	assert.Contains(t, buf.String(), "ForceNew")
}
