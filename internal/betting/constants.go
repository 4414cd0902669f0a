package betting

// Stake bounds, denominated in the stake currency
const (
	MinStake = 1.0
	MaxStake = 10000.0
)

// PayoutScale is the decimal scale potential payouts are rounded to
const PayoutScale = 2

// MinOdds is exclusive; odds at or below even money make no sense for a
// back bet
const MinOdds = 1.0
