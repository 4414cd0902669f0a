package ledger

import "time"

// Retry policy for wallet mutations that hit concurrent update conflicts
const (
	MaxRetries     = 3
	RetryBaseDelay = 10 * time.Millisecond
)

// USDScale is the decimal scale used for USD valuations
const USDScale = 2

// ConversionScale bounds the precision of converted crypto amounts
const ConversionScale = 8

// Transaction descriptions
const (
	DescDeposit  = "deposit"
	DescWithdraw = "withdrawal"
)

// Metric result labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
