package casino

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/games"
	"github.com/ibcplay/ibcplay/internal/ledger"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/metrics"
	"github.com/ibcplay/ibcplay/internal/prices"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// GameInfo describes one playable game in the catalog
type GameInfo struct {
	Name          domain.Game `json:"name"`
	HouseEdge     float64     `json:"house_edge"`
	MinStake      float64     `json:"min_stake"`
	MaxStake      float64     `json:"max_stake"`
	MaxMultiplier float64     `json:"max_multiplier"`
}

// Service defines the interface for casino operations. Play drives a round
// through its full lifecycle: lock the stake, compute the outcome, persist
// it, settle the wallet, mark the round settled. Each step is individually
// durable so a crash at any point leaves a recoverable round, never a lost
// stake or a double payout.
type Service interface {
	Games() []GameInfo
	Play(ctx context.Context, ownerID uuid.UUID, game domain.Game, currency string, stake decimal.Decimal, opts domain.PlayOptions) (*domain.CasinoRound, error)
	History(ctx context.Context, filter repository.RoundFilter) ([]domain.CasinoRound, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (*domain.CasinoStats, error)
	RecoverUnsettled(ctx context.Context) error
}

type service struct {
	rounds repository.Rounds
	ledger ledger.Service
	engine *games.Engine
	prices prices.Service
}

// NewService creates a new casino service
func NewService(rounds repository.Rounds, ledgerService ledger.Service, engine *games.Engine, priceService prices.Service) Service {
	return &service{rounds: rounds, ledger: ledgerService, engine: engine, prices: priceService}
}

// Games returns the playable catalog
func (s *service) Games() []GameInfo {
	catalog := make([]GameInfo, 0, len(domain.Games))
	for _, game := range domain.Games {
		catalog = append(catalog, GameInfo{
			Name:          game,
			HouseEdge:     s.engine.HouseEdge(game),
			MinStake:      MinStake,
			MaxStake:      MaxStake,
			MaxMultiplier: s.engine.MaxMultiplier(game),
		})
	}
	return catalog
}

// Play executes one round
func (s *service) Play(ctx context.Context, ownerID uuid.UUID, game domain.Game, currency string, stake decimal.Decimal, opts domain.PlayOptions) (*domain.CasinoRound, error) {
	if err := s.validateStake(stake); err != nil {
		return nil, err
	}
	if err := opts.Validate(game); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)

	round := &domain.CasinoRound{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Game:     game,
		State:    domain.RoundStateRequested,
		Currency: currency,
		Stake:    stake,
		Payout:   decimal.Zero,
	}
	if err := s.rounds.CreateRound(ctx, round); err != nil {
		return nil, err
	}

	// Lock the stake. Nothing is at risk until this succeeds, so a failure
	// just voids the round record.
	description := fmt.Sprintf("%s round %s", game, round.ID)
	if err := s.ledger.LockStake(ctx, ownerID, currency, stake, round.ID, description); err != nil {
		s.voidRound(ctx, round.ID, domain.RoundStateRequested)
		return nil, err
	}

	if err := s.advance(ctx, round, domain.RoundStateRequested, domain.RoundStateFundsLocked); err != nil {
		s.compensateLock(ctx, round)
		return nil, err
	}

	result, err := s.engine.Play(game, opts)
	if err != nil {
		s.compensateLock(ctx, round)
		return nil, err
	}

	payout := decimal.Zero
	if result.Multiplier > 0 {
		payout = stake.Mul(decimal.NewFromFloat(result.Multiplier)).Round(PayoutScale)
	}
	trace, err := json.Marshal(result.Trace)
	if err != nil {
		s.compensateLock(ctx, round)
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}

	// Persist the outcome before touching balances. From here on the round
	// is settled from its stored state, so redraws are impossible.
	affected, err := s.rounds.SaveRoundOutcome(ctx, round.ID, result.Outcome, result.Multiplier, payout, trace)
	if err != nil {
		s.compensateLock(ctx, round)
		return nil, err
	}
	if affected == 0 {
		log.Warn("Round left funds_locked concurrently", "round_id", round.ID)
		return nil, fmt.Errorf("%w: round %s", domain.ErrConflict, round.ID)
	}

	round.State = domain.RoundStateOutcomeComputed
	round.Outcome = result.Outcome
	round.Multiplier = result.Multiplier
	round.Payout = payout
	round.TraceData = trace

	if err := s.settleRound(ctx, round); err != nil {
		// The outcome is durable; the recovery pass will finish settlement
		log.Error("Settlement failed, round left for recovery",
			"round_id", round.ID, "error", err)
		return nil, err
	}

	s.recordPlayMetrics(ctx, round)
	log.Info("Round settled",
		"round_id", round.ID, "game", game, "outcome", round.Outcome,
		"stake", stake, "payout", payout, "multiplier", round.Multiplier)

	settled, err := s.rounds.GetRound(ctx, round.ID)
	if err != nil {
		return round, nil
	}
	return settled, nil
}

// History retrieves round history
func (s *service) History(ctx context.Context, filter repository.RoundFilter) ([]domain.CasinoRound, error) {
	return s.rounds.ListRounds(ctx, filter)
}

// Stats aggregates the player's settled rounds
func (s *service) Stats(ctx context.Context, ownerID uuid.UUID) (*domain.CasinoStats, error) {
	return s.rounds.GetStats(ctx, ownerID)
}

// settleRound pays out per the persisted outcome and marks the round
// settled. A duplicate settlement error means another path already paid;
// the state update is still applied.
func (s *service) settleRound(ctx context.Context, round *domain.CasinoRound) error {
	description := fmt.Sprintf("%s %s", round.Game, round.Outcome)
	err := s.ledger.Settle(ctx, round.OwnerID, round.Currency, round.Stake, round.Payout, round.ID, description)
	if err != nil && !errors.Is(err, domain.ErrAlreadySettled) {
		return err
	}

	if err := s.advance(ctx, round, domain.RoundStateOutcomeComputed, domain.RoundStateSettled); err != nil {
		// Another settler won the state race after the idempotent payout;
		// the money is correct either way
		logger.FromContext(ctx).Warn("Round state already advanced", "round_id", round.ID)
	}
	round.State = domain.RoundStateSettled
	return nil
}

// compensateLock releases a locked stake when the round cannot proceed and
// no outcome was persisted. A failed release is counted and logged for
// reconciliation; the stake stays locked rather than risking a double
// credit.
func (s *service) compensateLock(ctx context.Context, round *domain.CasinoRound) {
	err := s.ledger.ReleaseStake(ctx, round.OwnerID, round.Currency, round.Stake, round.ID)
	if err != nil && !errors.Is(err, domain.ErrAlreadySettled) {
		metrics.CompensationsFailed.Inc()
		logger.FromContext(ctx).Error("Compensating release failed",
			"round_id", round.ID, "error", err)
		return
	}
	s.voidRound(ctx, round.ID, domain.RoundStateFundsLocked)
}

func (s *service) voidRound(ctx context.Context, id uuid.UUID, expected domain.RoundState) {
	if _, err := s.rounds.UpdateRoundStateIfMatches(ctx, id, expected, domain.RoundStateVoided); err != nil {
		logger.FromContext(ctx).Error("Failed to void round", "round_id", id, "error", err)
	}
}

func (s *service) advance(ctx context.Context, round *domain.CasinoRound, expected, next domain.RoundState) error {
	affected, err := s.rounds.UpdateRoundStateIfMatches(ctx, round.ID, expected, next)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: round %s not in state %s", domain.ErrConflict, round.ID, expected)
	}
	round.State = next
	return nil
}

func (s *service) validateStake(stake decimal.Decimal) error {
	if stake.LessThan(decimal.NewFromFloat(MinStake)) || stake.GreaterThan(decimal.NewFromFloat(MaxStake)) {
		return fmt.Errorf("%w: stake must be between %v and %v", domain.ErrInvalidStake, MinStake, MaxStake)
	}
	return nil
}

func (s *service) recordPlayMetrics(ctx context.Context, round *domain.CasinoRound) {
	metrics.RoundsPlayed.WithLabelValues(string(round.Game), string(round.Outcome)).Inc()

	quote, err := s.prices.GetRate(ctx, round.Currency)
	if err != nil {
		return
	}
	wagered, _ := round.Stake.Mul(quote.USDRate).Float64()
	paid, _ := round.Payout.Mul(quote.USDRate).Float64()
	metrics.AmountWagered.Add(wagered)
	metrics.AmountPaidOut.Add(paid)
}
