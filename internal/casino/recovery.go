package casino

import (
	"context"
	"errors"
	"time"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/metrics"
)

// RecoverUnsettled finishes rounds stranded mid-settlement by an earlier
// crash. A round still in funds_locked has no durable outcome, so the stake
// is refunded and the round voided. A round in outcome_computed already
// owes a payout; settlement resumes from the stored outcome. Both paths go
// through the ledger's idempotent settlement, so running recovery
// concurrently with a live settler is safe.
func (s *service) RecoverUnsettled(ctx context.Context) error {
	log := logger.FromContext(ctx)

	stranded, err := s.rounds.ListUnsettledRounds(ctx, time.Now().Add(-RecoveryMinAge), RecoveryBatchSize)
	if err != nil {
		return err
	}
	if len(stranded) == 0 {
		return nil
	}

	log.Info("Recovering stranded rounds", "count", len(stranded))

	for _, round := range stranded {
		round := round
		switch round.State {
		case domain.RoundStateFundsLocked:
			s.recoverLocked(ctx, &round)
		case domain.RoundStateOutcomeComputed:
			s.recoverComputed(ctx, &round)
		}
	}
	return nil
}

func (s *service) recoverLocked(ctx context.Context, round *domain.CasinoRound) {
	err := s.ledger.ReleaseStake(ctx, round.OwnerID, round.Currency, round.Stake, round.ID)
	if err != nil && !errors.Is(err, domain.ErrAlreadySettled) {
		logger.FromContext(ctx).Error("Recovery release failed",
			"round_id", round.ID, "error", err)
		return
	}

	s.voidRound(ctx, round.ID, domain.RoundStateFundsLocked)
	metrics.RoundsRecovered.WithLabelValues(RecoveryActionReleased).Inc()
	logger.FromContext(ctx).Info("Stranded round refunded",
		"round_id", round.ID, "game", round.Game, "stake", round.Stake)
}

func (s *service) recoverComputed(ctx context.Context, round *domain.CasinoRound) {
	if err := s.settleRound(ctx, round); err != nil {
		logger.FromContext(ctx).Error("Recovery settlement failed",
			"round_id", round.ID, "error", err)
		return
	}

	metrics.RoundsRecovered.WithLabelValues(RecoveryActionSettled).Inc()
	logger.FromContext(ctx).Info("Stranded round settled",
		"round_id", round.ID, "game", round.Game, "payout", round.Payout)
}
