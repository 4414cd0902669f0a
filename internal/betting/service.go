package betting

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/ledger"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/metrics"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// PlaceBetRequest carries the parameters of a new sports bet
type PlaceBetRequest struct {
	BetType   string
	Sport     string
	EventName string
	Selection string
	Odds      decimal.Decimal
	Stake     decimal.Decimal
	Currency  string
}

// Service defines the interface for sports betting operations. The stake is
// locked in the owner's wallet for the lifetime of the bet; resolution pays
// the fixed potential payout on a win, consumes the stake on a loss, and
// refunds it on a void.
type Service interface {
	Place(ctx context.Context, ownerID uuid.UUID, req PlaceBetRequest) (*domain.Bet, error)
	Resolve(ctx context.Context, betID uuid.UUID, result string) (*domain.Bet, error)
	Get(ctx context.Context, betID uuid.UUID) (*domain.Bet, error)
	History(ctx context.Context, filter repository.BetFilter) ([]domain.Bet, error)
}

type service struct {
	bets   repository.Bets
	ledger ledger.Service
}

// NewService creates a new betting service
func NewService(bets repository.Bets, ledgerService ledger.Service) Service {
	return &service{bets: bets, ledger: ledgerService}
}

// Place validates the bet, locks the stake and records the bet as pending.
// The potential payout is fixed at placement: stake times odds.
func (s *service) Place(ctx context.Context, ownerID uuid.UUID, req PlaceBetRequest) (*domain.Bet, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	bet := &domain.Bet{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		BetType:         req.BetType,
		Sport:           req.Sport,
		EventName:       req.EventName,
		Selection:       req.Selection,
		Odds:            req.Odds,
		Stake:           req.Stake,
		Currency:        req.Currency,
		PotentialPayout: req.Stake.Mul(req.Odds).Round(PayoutScale),
		Status:          domain.BetStatusPending,
		SettledAmount:   decimal.Zero,
	}

	description := fmt.Sprintf("bet on %s: %s", req.EventName, req.Selection)
	if err := s.ledger.LockStake(ctx, ownerID, req.Currency, req.Stake, bet.ID, description); err != nil {
		return nil, err
	}

	if err := s.bets.CreateBet(ctx, bet); err != nil {
		// Undo the lock so the stake is not stranded behind a bet that
		// never existed
		if releaseErr := s.ledger.ReleaseStake(ctx, ownerID, req.Currency, req.Stake, bet.ID); releaseErr != nil {
			metrics.CompensationsFailed.Inc()
			logger.FromContext(ctx).Error("Failed to release stake for unrecorded bet",
				"bet_id", bet.ID, "error", releaseErr)
		}
		return nil, err
	}

	metrics.BetsPlaced.Inc()
	logger.FromContext(ctx).Info("Bet placed",
		"bet_id", bet.ID, "owner_id", ownerID, "event", req.EventName,
		"odds", req.Odds, "stake", req.Stake, "potential_payout", bet.PotentialPayout)
	return bet, nil
}

// Resolve settles a pending bet with the event result. The ledger's
// one-settlement-per-reference guarantee makes concurrent resolutions safe:
// whichever resolver journals first wins, the other gets ErrInvalidState.
func (s *service) Resolve(ctx context.Context, betID uuid.UUID, result string) (*domain.Bet, error) {
	status, ok := domain.BetResults[result]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidResult, result)
	}

	bet, err := s.bets.GetBet(ctx, betID)
	if err != nil {
		return nil, err
	}
	if bet.Status != domain.BetStatusPending {
		return nil, fmt.Errorf("%w: bet %s is %s", domain.ErrInvalidState, betID, bet.Status)
	}

	var settledAmount decimal.Decimal
	switch status {
	case domain.BetStatusWon:
		settledAmount = bet.PotentialPayout
		err = s.ledger.Settle(ctx, bet.OwnerID, bet.Currency, bet.Stake, settledAmount, bet.ID,
			fmt.Sprintf("bet won: %s", bet.EventName))
	case domain.BetStatusLost:
		settledAmount = decimal.Zero
		err = s.ledger.Settle(ctx, bet.OwnerID, bet.Currency, bet.Stake, decimal.Zero, bet.ID,
			fmt.Sprintf("bet lost: %s", bet.EventName))
	case domain.BetStatusVoid:
		settledAmount = bet.Stake
		err = s.ledger.ReleaseStake(ctx, bet.OwnerID, bet.Currency, bet.Stake, bet.ID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			return nil, fmt.Errorf("%w: bet %s already resolved", domain.ErrInvalidState, betID)
		}
		return nil, err
	}

	affected, err := s.bets.SettleBetIfPending(ctx, betID, status, settledAmount)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// The ledger entry went through, so this process owns the
		// settlement; losing the status race here means a stale read
		logger.FromContext(ctx).Warn("Bet status already updated", "bet_id", betID)
	}

	metrics.BetsResolved.WithLabelValues(result).Inc()
	logger.FromContext(ctx).Info("Bet resolved",
		"bet_id", betID, "result", result, "settled_amount", settledAmount)

	return s.bets.GetBet(ctx, betID)
}

// Get fetches one bet
func (s *service) Get(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	return s.bets.GetBet(ctx, betID)
}

// History retrieves bet history
func (s *service) History(ctx context.Context, filter repository.BetFilter) ([]domain.Bet, error) {
	return s.bets.ListBets(ctx, filter)
}

func validateRequest(req PlaceBetRequest) error {
	if req.Odds.LessThanOrEqual(decimal.NewFromFloat(MinOdds)) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidOdds, req.Odds)
	}
	if req.Stake.LessThan(decimal.NewFromFloat(MinStake)) || req.Stake.GreaterThan(decimal.NewFromFloat(MaxStake)) {
		return fmt.Errorf("%w: stake must be between %v and %v", domain.ErrInvalidStake, MinStake, MaxStake)
	}
	if req.EventName == "" || req.Selection == "" {
		return fmt.Errorf("%w: event name and selection are required", domain.ErrInvalidStake)
	}
	return nil
}
