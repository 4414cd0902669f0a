package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// Rounds defines the interface for casino round persistence. State changes
// go through compare-and-set updates: the affected row count tells the
// caller whether it won the transition.
type Rounds interface {
	CreateRound(ctx context.Context, round *domain.CasinoRound) error
	GetRound(ctx context.Context, id uuid.UUID) (*domain.CasinoRound, error)

	// UpdateRoundStateIfMatches advances the state machine only when the
	// current state equals expected. Moving into settled or voided also
	// stamps settled_at.
	UpdateRoundStateIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.RoundState) (int64, error)

	// SaveRoundOutcome persists the computed outcome and trace while
	// advancing funds_locked to outcome_computed in one statement.
	SaveRoundOutcome(ctx context.Context, id uuid.UUID, outcome domain.Outcome, multiplier float64, payout decimal.Decimal, trace json.RawMessage) (int64, error)

	ListRounds(ctx context.Context, filter RoundFilter) ([]domain.CasinoRound, error)

	// ListUnsettledRounds returns rounds stranded mid-settlement, oldest
	// first, for the startup recovery pass.
	ListUnsettledRounds(ctx context.Context, olderThan time.Time, limit int) ([]domain.CasinoRound, error)

	GetStats(ctx context.Context, ownerID uuid.UUID) (*domain.CasinoStats, error)
}

// RoundFilter narrows round history queries
type RoundFilter struct {
	OwnerID uuid.UUID
	Game    *domain.Game
	Limit   int
	Offset  int
}
