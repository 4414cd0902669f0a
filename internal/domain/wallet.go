package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet holds the balances for one (owner, currency) pair. Available funds
// can be spent or locked; locked funds are reserved against a pending round
// or bet and can only leave through Settle or Release. Both balances are
// always non-negative.
type Wallet struct {
	OwnerID   uuid.UUID       `json:"owner_id"`
	Currency  string          `json:"currency"`
	Available decimal.Decimal `json:"available_balance"`
	Locked    decimal.Decimal `json:"locked_balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Total returns available + locked.
func (w Wallet) Total() decimal.Decimal {
	return w.Available.Add(w.Locked)
}

// WalletBalance is a wallet annotated with its current USD valuation.
type WalletBalance struct {
	Currency  string          `json:"currency"`
	Available decimal.Decimal `json:"available_balance"`
	Locked    decimal.Decimal `json:"locked_balance"`
	USDValue  decimal.Decimal `json:"usd_value"`
}

// Conversion is the result of exchanging between two currencies at a single
// point-in-time rate pair.
type Conversion struct {
	ReferenceID  uuid.UUID       `json:"reference_id"`
	FromCurrency string          `json:"from_currency"`
	FromAmount   decimal.Decimal `json:"from_amount"`
	ToCurrency   string          `json:"to_currency"`
	ToAmount     decimal.Decimal `json:"to_amount"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}
