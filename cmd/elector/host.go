// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election"
	"github.com/infrablockchain/elector/election/reverts"
	"github.com/infrablockchain/elector/election/votes"
	"github.com/infrablockchain/elector/eventdb"
	"github.com/infrablockchain/elector/genesis"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/kv"
	"github.com/infrablockchain/elector/log"
	"github.com/infrablockchain/elector/pot"
	"github.com/infrablockchain/elector/session"
	"github.com/infrablockchain/elector/storage"
)

var logger = log.WithContext("pkg", "elector")

const (
	electionBucket kv.Bucket = "e/"
	potBucket      kv.Bucket = "p/"
	metaBucket     kv.Bucket = "m/"
)

var errNotInitialized = errors.New("election state not initialized")

// hostState is what the host persists between runs.
type hostState struct {
	Session    uint32
	Validators []infra.Address
	Queued     []infra.Address
}

// host plays the chain around the election engine: it rotates sessions,
// dispatches transactions and applies privileged calls.
type host struct {
	mainDB    kv.Store
	gene      *genesis.Genesis
	rotator   *session.Rotator
	election  *election.Election
	collector *pot.Collector
	sink      *eventdb.Sink
	members   *memberLog
	rewards   *rewardLog

	genesisID *storage.Value[infra.Bytes32]
	state     *storage.Value[hostState]
}

// openHost wires the engine over mainDB. The genesis is built on a fresh
// store when build is set, otherwise errNotInitialized is returned.
func openHost(mainDB kv.Store, events *eventdb.EventDB, gene *genesis.Genesis, cacheSize int, build bool) (*host, error) {
	meta := storage.NewContext(metaBucket.NewStore(mainDB), 8)
	h := &host{
		mainDB:    mainDB,
		gene:      gene,
		sink:      events.NewSink(),
		members:   &memberLog{},
		rewards:   &rewardLog{aggregated: make(map[election.SessionIndex]uint64)},
		genesisID: storage.NewValue[infra.Bytes32](meta, "genesis"),
		state:     storage.NewValue[hostState](meta, "state"),
	}

	storedID, initialized, err := h.genesisID.Get()
	if err != nil {
		return nil, errors.Wrap(err, "load genesis id")
	}
	if initialized && storedID != gene.ID() {
		return nil, errors.Errorf("genesis mismatch: stored %v, given %v", storedID.AbbrevString(), gene.ID().AbbrevString())
	}
	if !initialized && !build {
		return nil, errNotInitialized
	}

	if initialized {
		st, _, err := h.state.Get()
		if err != nil {
			return nil, errors.Wrap(err, "load host state")
		}
		h.rotator = session.NewRotatorAt(election.SessionIndex(st.Session), st.Validators, st.Queued)
	} else {
		h.rotator = session.NewRotator(nil)
	}

	electionCtx := storage.NewContext(electionBucket.NewStore(mainDB), cacheSize)
	if !initialized {
		// before construction, which reads the stored era length
		if err := gene.Build(electionCtx); err != nil {
			return nil, errors.Wrap(err, "build genesis")
		}
	}

	emitter := election.MultiEmitter(election.LogEmitter{}, h.sink)
	h.election = election.New(electionCtx, election.Config{
		Session:    h.rotator,
		Collective: h.members,
		Reward:     h.rewards,
		Emitter:    emitter,
	})
	h.collector = pot.New(storage.NewContext(potBucket.NewStore(mainDB), cacheSize), pot.Config{
		Emitter: emitter,
	})

	if !initialized {
		h.sink.Seek(0, 0)
		if err := h.rotator.Genesis(h.election); err != nil {
			return nil, err
		}
		if err := h.genesisID.Set(gene.ID()); err != nil {
			return nil, err
		}
		if err := h.saveState(); err != nil {
			return nil, err
		}
		logger.Info("genesis initialized", "network", gene.Name(), "id", gene.ID().AbbrevString())
	}
	return h, nil
}

func (h *host) saveState() error {
	return h.state.Set(hostState{
		Session:    uint32(h.rotator.Index()),
		Validators: h.rotator.Validators(),
		Queued:     h.rotator.Queued(),
	})
}

// countKeys returns the number of keys stored under the bucket.
func (h *host) countKeys(b kv.Bucket) (int, error) {
	iter := b.NewStore(h.mainDB).Iterate(kv.Range{})
	defer iter.Release()

	n := 0
	for iter.Next() {
		n++
	}
	return n, iter.Error()
}

// seek positions the event sink at the current era and session.
func (h *host) seek() error {
	era, _, err := h.election.CurrentEra()
	if err != nil {
		return err
	}
	h.sink.Seek(era, h.rotator.Index())
	return nil
}

// run rotates the number of sessions of the scenario, applying the steps
// of each session before it ends. Every finished rotation is reported to progress.
func (h *host) run(ctx context.Context, scenario *genesis.Scenario, progress chan<- election.SessionIndex) error {
	for range scenario.Sessions {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		index := h.rotator.Index()
		if err := h.seek(); err != nil {
			return err
		}
		for _, step := range scenario.StepsAt(uint32(index)) {
			if err := h.apply(index, step); err != nil {
				return errors.Wrapf(err, "session %d", index)
			}
		}

		h.collector.SetCurrentBlock(uint32(index))
		started, err := h.rotator.Rotate(h.election)
		if err != nil {
			return err
		}
		if err := h.saveState(); err != nil {
			return err
		}
		if err := h.sink.Err(); err != nil {
			return err
		}

		select {
		case progress <- started:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// apply executes a scenario step. Rejected privileged calls are logged, not fatal.
func (h *host) apply(index election.SessionIndex, step genesis.Step) error {
	origin := h.gene.Executor()
	if step.Origin != nil {
		origin = *step.Origin
	}
	call := func(op string, err error) error {
		if err == nil {
			return nil
		}
		if reverts.IsRevertErr(err) {
			logger.Warn("call rejected", "op", op, "origin", origin, "err", err)
			return nil
		}
		return errors.Wrap(err, op)
	}

	e := h.election
	if c := step.SetNumberOfValidators; c != nil {
		if err := call("setNumberOfValidators", e.SetNumberOfValidators(origin, c.Total, c.SeedTrust)); err != nil {
			return err
		}
	}
	for _, who := range step.AddSeedTrustValidators {
		if err := call("addSeedTrustValidator", e.AddSeedTrustValidator(origin, who)); err != nil {
			return err
		}
	}
	if v := step.SetMinVotePoints; v != nil {
		if err := call("setMinVotePointsThreshold", e.SetMinVotePointsThreshold(origin, *v)); err != nil {
			return err
		}
	}
	if p := step.SetPoolStatus; p != nil {
		if err := call("setPoolStatus", e.SetPoolStatus(origin, *p)); err != nil {
			return err
		}
	}
	if f := step.SetForceEra; f != nil {
		if err := call("setForceEra", e.SetForceEra(origin, *f)); err != nil {
			return err
		}
	}
	for _, v := range step.Votes {
		if err := e.UpdateVoteStatus(v.Who, v.Points); err != nil {
			return errors.Wrap(err, "update vote status")
		}
	}
	for _, tx := range step.Transactions {
		vote := pot.NewCollectVote(tx.Candidate)
		if err := vote.Validate(); err != nil {
			return err
		}
		info := pot.DispatchInfo{Weight: tx.Weight}
		post := pot.PostDispatchInfo{ActualWeight: tx.ActualWeight}
		if err := h.collector.PostDispatch(vote.PreDispatch(), info, post); err != nil {
			return errors.Wrap(err, "collect vote")
		}
		h.rewards.AggregateReward(index, 0, election.SystemTokenID{}, post.CalcActualWeight(info))
	}
	return nil
}

// memberLog is the collective receiving elected members.
type memberLog struct {
	mu      sync.Mutex
	members []infra.Address
	updates int
}

func (m *memberLog) SetNewMembers(members []infra.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members = append([]infra.Address(nil), members...)
	m.updates++
	logger.Info("👥 collective members updated", "members", len(members))
}

// rewardLog tracks fees per session until they are distributed.
type rewardLog struct {
	mu          sync.Mutex
	aggregated  map[election.SessionIndex]uint64
	distributed []election.SessionIndex
}

func (r *rewardLog) AggregateReward(s election.SessionIndex, _ election.ParaID, _ election.SystemTokenID, amount uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aggregated[s] = votes.SaturatingAdd(r.aggregated[s], amount)
}

func (r *rewardLog) DistributeReward(s election.SessionIndex) {
	r.mu.Lock()
	defer r.mu.Unlock()
	logger.Debug("distribute session fees", "session", s, "fees", r.aggregated[s])
	delete(r.aggregated, s)
	r.distributed = append(r.distributed, s)
}
