package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoundState tracks a casino round through settlement. Transitions are
// one-way: requested → funds_locked → outcome_computed → settled. A round
// whose lock had to be compensated away ends in voided instead.
type RoundState string

const (
	RoundStateRequested       RoundState = "requested"
	RoundStateFundsLocked     RoundState = "funds_locked"
	RoundStateOutcomeComputed RoundState = "outcome_computed"
	RoundStateSettled         RoundState = "settled"
	RoundStateVoided          RoundState = "voided"
)

// Outcome is the result of a game round or bet leg
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
)

// CasinoRound records one play request. TraceData stores the random draws
// made by the game engine so the outcome can be audited and, after a crash
// mid-settlement, resumed without redrawing.
type CasinoRound struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	Game       Game            `json:"game"`
	State      RoundState      `json:"state"`
	Currency   string          `json:"currency"`
	Stake      decimal.Decimal `json:"stake_amount"`
	Outcome    Outcome         `json:"outcome,omitempty"`
	Payout     decimal.Decimal `json:"payout_amount"`
	Multiplier float64         `json:"multiplier"`
	TraceData  json.RawMessage `json:"trace_data,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	SettledAt  *time.Time      `json:"settled_at,omitempty"`
}

// CasinoStats aggregates a player's round history.
type CasinoStats struct {
	TotalRounds  int             `json:"total_rounds"`
	TotalWagered decimal.Decimal `json:"total_wagered"`
	TotalWon     decimal.Decimal `json:"total_won"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	WinRate      float64         `json:"win_rate"`
	BiggestWin   decimal.Decimal `json:"biggest_win"`
	FavoriteGame string          `json:"favorite_game,omitempty"`
}
