// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package election

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/infrablockchain/elector/election/seedtrust"
	"github.com/infrablockchain/elector/election/votes"
	"github.com/infrablockchain/elector/infra"
	"github.com/infrablockchain/elector/log"
	"github.com/infrablockchain/elector/storage"
)

var logger = log.WithContext("pkg", "election")

func SetLogger(l log.Logger) {
	logger = l
}

const (
	slotCurrentEra         = "current-era"
	slotStartSessionPerEra = "start-session-index-per-era"
	slotForceEra           = "force-era"
	slotPoolStatus         = "pool-status"
	slotTotalValidators    = "total-validators"
	slotSeedTrustNum       = "seed-trust-validators-num"
	slotExecutor           = "executor"

	// SessionsPerEraName names the storage override of the era length.
	SessionsPerEraName = "sessions-per-era"
)

// Config holds the collaborators of an Election. Nil ones get no-op defaults.
type Config struct {
	// SessionsPerEra is the era length used unless overridden in storage.
	// Zero means infra.DefaultSessionsPerEra.
	SessionsPerEra uint32
	Session        SessionInterface
	Collective     CollectiveInterface
	Reward         RewardInterface
	Emitter        Emitter
}

// Election plans eras and elects their validators.
// All operations are serialized and either commit completely or not at all.
type Election struct {
	mu   sync.Mutex
	sctx *storage.Context

	sessionsPerEra *storage.ConfigVariable

	session    SessionInterface
	collective CollectiveInterface
	reward     RewardInterface
	emitter    Emitter

	seedTrust *seedtrust.Service
	votes     *votes.Service

	currentEra    *storage.Value[EraIndex]
	startSessions *storage.Mapping[EraIndex, SessionIndex]
	forceEra      *storage.Value[Forcing]
	poolStatus    *storage.Value[Pool]
	total         *storage.Value[uint32]
	seedTrustNum  *storage.Value[uint32]
	executor      *storage.Value[infra.Address]

	// effects of the running operation, applied after commit
	pending []func()
}

var _ SessionManager = (*Election)(nil)
var _ VotingInterface = (*Election)(nil)

// New creates an election engine over the storage context.
// Genesis state should be built before, see GenesisConfig.Build.
func New(sctx *storage.Context, cfg Config) *Election {
	if cfg.SessionsPerEra == 0 {
		cfg.SessionsPerEra = infra.DefaultSessionsPerEra
	}
	if cfg.Session == nil {
		cfg.Session = NoopSession{}
	}
	if cfg.Collective == nil {
		cfg.Collective = NoopCollective{}
	}
	if cfg.Reward == nil {
		cfg.Reward = NoopReward{}
	}
	if cfg.Emitter == nil {
		cfg.Emitter = LogEmitter{}
	}

	sessionsPerEra := storage.NewConfigVariable(SessionsPerEraName, cfg.SessionsPerEra)
	sessionsPerEra.Override(sctx)

	return &Election{
		sctx:           sctx,
		sessionsPerEra: sessionsPerEra,
		session:        cfg.Session,
		collective:     cfg.Collective,
		reward:         cfg.Reward,
		emitter:        cfg.Emitter,
		seedTrust:      seedtrust.New(sctx),
		votes:          votes.New(sctx),
		currentEra:     storage.NewValue[EraIndex](sctx, slotCurrentEra),
		startSessions:  storage.NewMapping[EraIndex, SessionIndex](sctx, slotStartSessionPerEra),
		forceEra:       storage.NewValue[Forcing](sctx, slotForceEra),
		poolStatus:     storage.NewValue[Pool](sctx, slotPoolStatus),
		total:          storage.NewValue[uint32](sctx, slotTotalValidators),
		seedTrustNum:   storage.NewValue[uint32](sctx, slotSeedTrustNum),
		executor:       storage.NewValue[infra.Address](sctx, slotExecutor),
	}
}

// SessionsPerEra returns the effective era length.
func (e *Election) SessionsPerEra() uint32 {
	return e.sessionsPerEra.Get()
}

// atomic runs fn in a storage journal. Events and notifications queued by fn
// are delivered only once the journal is committed.
func (e *Election) atomic(fn func() error) error {
	e.pending = nil
	err := e.sctx.Atomic(fn)
	pending := e.pending
	e.pending = nil
	if err != nil {
		return err
	}
	for _, f := range pending {
		f()
	}
	return nil
}

func (e *Election) emit(ev Event) {
	e.pending = append(e.pending, func() {
		metricEventsCount().AddWithLabel(1, map[string]string{"kind": ev.Kind()})
		e.emitter.Emit(ev)
	})
}

func (e *Election) afterCommit(f func()) {
	e.pending = append(e.pending, f)
}

func (e *Election) reject(op string, err error) error {
	metricRejectedCount().AddWithLabel(1, map[string]string{"op": op})
	logger.Debug("operation rejected", "op", op, "err", err)
	return err
}

// UpdateVoteStatus adds weight to the ranking points of who.
func (e *Election) UpdateVoteStatus(who infra.Address, weight uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.atomic(func() error {
		if err := e.votes.AddPoints(who, weight); err != nil {
			return err
		}
		e.emit(VotePointsAdded{Who: who, Points: weight})

		pool, err := e.votes.Pool()
		if err != nil {
			return err
		}
		e.afterCommit(func() {
			metricPoolSize().SetWithLabel(int64(pool.Counts()), map[string]string{"pool": "pot"})
		})
		return nil
	})
}

//
// Getters - no state change
//

// CurrentEra returns the latest planned era. ok is false before the first election.
func (e *Election) CurrentEra() (era EraIndex, ok bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentEra.Get()
}

// StartSessionIndex returns the session at which era began.
func (e *Election) StartSessionIndex(era EraIndex) (SessionIndex, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startSessions.Get(era)
}

func (e *Election) ForceEra() (Forcing, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, _, err := e.forceEra.Get()
	return f, err
}

func (e *Election) PoolStatus() (Pool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, _, err := e.poolStatus.Get()
	return p, err
}

// NumberOfValidators returns the total and the seed trust number of validators.
func (e *Election) NumberOfValidators() (total uint32, seedTrust uint32, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counts()
}

func (e *Election) counts() (uint32, uint32, error) {
	total, _, err := e.total.Get()
	if err != nil {
		return 0, 0, errors.Wrap(err, "load total validators")
	}
	seedTrust, _, err := e.seedTrustNum.Get()
	if err != nil {
		return 0, 0, errors.Wrap(err, "load seed trust validators num")
	}
	return total, seedTrust, nil
}

func (e *Election) SeedTrustPool() ([]infra.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seedTrust.Pool()
}

func (e *Election) SeedTrustValidators() ([]infra.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seedTrust.Elected()
}

// PotValidatorPool returns the ranking ledger in ledger order.
func (e *Election) PotValidatorPool() (*votes.VotingStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.votes.Pool()
}

func (e *Election) PotValidators() ([]infra.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.votes.Elected()
}

func (e *Election) MinVotePointsThreshold() (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.votes.Threshold()
}

// Executor returns the privileged origin.
func (e *Election) Executor() (infra.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadExecutor()
}

func (e *Election) loadExecutor() (infra.Address, error) {
	executor, ok, err := e.executor.Get()
	if err != nil {
		return infra.Address{}, err
	}
	if !ok {
		return infra.Executor, nil
	}
	return executor, nil
}
