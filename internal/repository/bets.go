package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// Bets defines the interface for sports bet persistence
type Bets interface {
	CreateBet(ctx context.Context, bet *domain.Bet) error
	GetBet(ctx context.Context, id uuid.UUID) (*domain.Bet, error)

	// SettleBetIfPending moves a pending bet to its terminal status and
	// records the settled amount. Returns the affected row count; 0 means
	// another resolver already settled the bet.
	SettleBetIfPending(ctx context.Context, id uuid.UUID, status domain.BetStatus, settledAmount decimal.Decimal) (int64, error)

	ListBets(ctx context.Context, filter BetFilter) ([]domain.Bet, error)
}

// BetFilter narrows bet history queries
type BetFilter struct {
	OwnerID uuid.UUID
	Status  *domain.BetStatus
	Limit   int
	Offset  int
}
