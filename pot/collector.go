// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pot converts the execution cost of transactions into
// proof-of-transaction vote weight for a chosen candidate.
package pot

import (
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/election/votes"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/log"
	"github.com/infrablockchain/elector/storage"
)

var logger = log.WithContext("pkg", "pot")

const slotVoteInfo = "vote-info"

// Config holds the collaborators of a Collector. Nil ones get no-op defaults.
type Config struct {
	Emitter      election.Emitter
	Adjuster     WeightAdjuster
	GenesisBlock uint32
}

// Collector accumulates transaction weight per candidate.
// The tally is independent of the election voting status.
type Collector struct {
	mu   sync.Mutex
	sctx *storage.Context

	emitter      election.Emitter
	adjuster     WeightAdjuster
	genesisBlock uint32
	currentBlock uint32

	voteInfo *storage.Mapping[infra.Address, uint64]
}

func New(sctx *storage.Context, cfg Config) *Collector {
	if cfg.Emitter == nil {
		cfg.Emitter = election.LogEmitter{}
	}
	if cfg.Adjuster == nil {
		cfg.Adjuster = NoopAdjuster{}
	}
	return &Collector{
		sctx:         sctx,
		emitter:      cfg.Emitter,
		adjuster:     cfg.Adjuster,
		genesisBlock: cfg.GenesisBlock,
		currentBlock: cfg.GenesisBlock,
		voteInfo:     storage.NewMapping[infra.Address, uint64](sctx, slotVoteInfo),
	}
}

// SetCurrentBlock sets the block number passed to the weight adjuster.
func (c *Collector) SetCurrentBlock(num uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentBlock = num
}

// PostDispatch adds the consumed weight of a transaction to the candidate
// captured at pre dispatch. It does nothing if no candidate was chosen.
func (c *Collector) PostDispatch(pre *Pre, info DispatchInfo, post PostDispatchInfo) error {
	candidate, ok := pre.Candidate()
	if !ok {
		metricVotesCount().AddWithLabel(1, map[string]string{"result": "skipped"})
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	weight := c.adjuster.AdjustWeight(post.CalcActualWeight(info), c.genesisBlock, c.currentBlock)

	var total uint64
	if err := c.sctx.Atomic(func() error {
		prev, _, err := c.voteInfo.Get(candidate)
		if err != nil {
			return errors.Wrap(err, "load vote info")
		}
		total = votes.SaturatingAdd(prev, weight)
		return c.voteInfo.Set(candidate, total)
	}); err != nil {
		return err
	}

	metricVotesCount().AddWithLabel(1, map[string]string{"result": "collected"})
	metricWeightSum().Add(int64(min(weight, math.MaxInt64)))
	logger.Trace("vote collected", "candidate", candidate, "weight", weight, "total", total)

	c.emitter.Emit(VoteCollected{Candidate: candidate, Weight: total})
	return nil
}

// VoteInfo returns the accumulated weight of who.
func (c *Collector) VoteInfo(who infra.Address) (uint64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok, err := c.voteInfo.Get(who)
	if err != nil {
		return 0, false, errors.Wrap(err, "load vote info")
	}
	return w, ok, nil
}
