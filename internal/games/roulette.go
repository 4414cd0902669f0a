package games

import (
	"fmt"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// playRoulette spins a single-zero wheel. The zero pocket loses every
// outside bet, which is where the house margin comes from; no further edge
// factor is applied to the payout.
func (e *Engine) playRoulette(opts domain.RouletteOptions) (*Result, error) {
	pocket := e.rng.IntN(roulettePockets)

	color := "green"
	if rouletteRedNumbers[pocket] {
		color = "red"
	} else if pocket != 0 {
		color = "black"
	}

	trace := map[string]any{
		"pocket":   pocket,
		"color":    color,
		"bet_type": opts.BetType,
	}
	if opts.Value != nil {
		trace["bet_value"] = *opts.Value
	}

	var won bool
	var multiplier float64
	switch opts.BetType {
	case domain.RouletteBetNumber:
		won = pocket == *opts.Value
		multiplier = rouletteNumberMultiplier
	case domain.RouletteBetRed:
		won = rouletteRedNumbers[pocket]
		multiplier = rouletteEvenMoneyMultiplier
	case domain.RouletteBetBlack:
		won = pocket != 0 && !rouletteRedNumbers[pocket]
		multiplier = rouletteEvenMoneyMultiplier
	case domain.RouletteBetOdd:
		won = pocket != 0 && pocket%2 == 1
		multiplier = rouletteEvenMoneyMultiplier
	case domain.RouletteBetEven:
		won = pocket != 0 && pocket%2 == 0
		multiplier = rouletteEvenMoneyMultiplier
	default:
		return nil, fmt.Errorf("%w: roulette bet type %q", domain.ErrInvalidTarget, opts.BetType)
	}

	if !won {
		return &Result{Outcome: domain.OutcomeLoss, Multiplier: 0, Trace: trace}, nil
	}
	return &Result{Outcome: domain.OutcomeWin, Multiplier: multiplier, Trace: trace}, nil
}
