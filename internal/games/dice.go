package games

import "github.com/ibcplay/ibcplay/internal/domain"

// playDice rolls a number in [0, 100) with hundredth precision. An "over"
// prediction wins when the roll is strictly above the target, "under" when
// strictly below. The win multiplier is the fair odds for the chosen window
// reduced by the house edge.
func (e *Engine) playDice(opts domain.DiceOptions, edge float64) (*Result, error) {
	draw := e.rng.IntN(diceRollGranularity)
	roll := float64(draw) / 100.0

	var won bool
	var winChance float64
	if opts.Prediction == domain.DiceOver {
		won = roll > opts.Target
		winChance = 100.0 - opts.Target
	} else {
		won = roll < opts.Target
		winChance = opts.Target
	}

	multiplier := roundMultiplier((100.0 / winChance) * (1.0 - edge))

	trace := map[string]any{
		"roll":       roll,
		"target":     opts.Target,
		"prediction": opts.Prediction,
	}

	if !won {
		return &Result{Outcome: domain.OutcomeLoss, Multiplier: 0, Trace: trace}, nil
	}
	return &Result{Outcome: domain.OutcomeWin, Multiplier: multiplier, Trace: trace}, nil
}
