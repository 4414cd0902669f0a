package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind identifies what a ledger entry represents
type TransactionKind string

const (
	TransactionDeposit      TransactionKind = "deposit"
	TransactionWithdraw     TransactionKind = "withdraw"
	TransactionConvertOut   TransactionKind = "convert_out"
	TransactionConvertIn    TransactionKind = "convert_in"
	TransactionStakeLock    TransactionKind = "stake_lock"
	TransactionStakeRelease TransactionKind = "stake_release"
	TransactionPayout       TransactionKind = "payout"
)

// Transaction statuses
const (
	TransactionStatusCompleted = "completed"
)

// Transaction is an immutable, append-only audit record of a single balance
// movement. ReferenceID links related entries: the two legs of a convert, or
// a stake_lock and the payout/release that resolved it.
type Transaction struct {
	ID          int64            `json:"id"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	Kind        TransactionKind  `json:"kind"`
	Currency    string           `json:"currency"`
	Amount      decimal.Decimal  `json:"amount"`
	USDValue    *decimal.Decimal `json:"usd_value,omitempty"`
	Status      string           `json:"status"`
	Description string           `json:"description,omitempty"`
	ReferenceID *uuid.UUID       `json:"reference_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
