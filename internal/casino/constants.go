package casino

import "time"

// Stake bounds, denominated in the stake currency
const (
	MinStake = 1.0
	MaxStake = 10000.0
)

// PayoutScale is the decimal scale payouts are rounded to
const PayoutScale = 2

// Recovery pass tuning. Rounds younger than RecoveryMinAge are left alone
// because their settlement may still be in flight.
const (
	RecoveryMinAge    = time.Minute
	RecoveryBatchSize = 100
)

// Metric action labels for recovered rounds
const (
	RecoveryActionReleased = "released"
	RecoveryActionSettled  = "settled"
)
