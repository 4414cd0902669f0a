package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetStatus tracks a sports bet. pending is the only non-terminal state;
// once a bet reaches won, lost or void it never changes again.
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
	BetStatusVoid    BetStatus = "void"
)

// BetResults enumerates the accepted resolve inputs.
var BetResults = map[string]BetStatus{
	"won":  BetStatusWon,
	"lost": BetStatusLost,
	"void": BetStatusVoid,
}

// Bet is a sports bet. The stake is locked in the owner's wallet while the
// bet is pending; PotentialPayout = Stake * Odds is fixed at placement.
type Bet struct {
	ID              uuid.UUID       `json:"id"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	BetType         string          `json:"bet_type"`
	Sport           string          `json:"sport,omitempty"`
	EventName       string          `json:"event_name"`
	Selection       string          `json:"selection"`
	Odds            decimal.Decimal `json:"odds"`
	Stake           decimal.Decimal `json:"stake_amount"`
	Currency        string          `json:"currency"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
	Status          BetStatus       `json:"status"`
	SettledAmount   decimal.Decimal `json:"settled_amount"`
	PlacedAt        time.Time       `json:"placed_at"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
}
