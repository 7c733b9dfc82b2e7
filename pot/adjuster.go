// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pot

// WeightAdjuster scales a vote weight by its age, measured from
// the genesis block to the current block.
type WeightAdjuster interface {
	AdjustWeight(weight uint64, genesisBlock, currentBlock uint32) uint64
}

// WeightAdjusterFunc adapts a function to WeightAdjuster.
type WeightAdjusterFunc func(weight uint64, genesisBlock, currentBlock uint32) uint64

func (f WeightAdjusterFunc) AdjustWeight(weight uint64, genesisBlock, currentBlock uint32) uint64 {
	return f(weight, genesisBlock, currentBlock)
}

// NoopAdjuster records weights as they are.
type NoopAdjuster struct{}

func (NoopAdjuster) AdjustWeight(weight uint64, _, _ uint32) uint64 { return weight }
