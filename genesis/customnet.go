// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/infrablockchain/elector/election"
)

// NewCustomNet creates a genesis from a user supplied config.
func NewCustomNet(name string, config *election.GenesisConfig) (*Genesis, error) {
	return newGenesis(name, config)
}

// LoadFile reads a custom genesis from a JSON or YAML file.
// The network is named after the file.
func LoadFile(path string) (*Genesis, error) {
	var config election.GenesisConfig
	if err := decodeFile(path, &config); err != nil {
		return nil, errors.Wrap(err, "load genesis")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewCustomNet(name, &config)
}

// decodeFile decodes a file by its extension, YAML unless it ends with .json.
// Unknown fields are rejected.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(out)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}
