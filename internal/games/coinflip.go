package games

import (
	"strings"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// playCoinflip flips a fair coin; a correct call pays just under double.
func (e *Engine) playCoinflip(opts domain.CoinflipOptions, edge float64) (*Result, error) {
	choice := strings.ToLower(opts.Choice)

	flip := domain.CoinHeads
	if e.rng.IntN(2) == 1 {
		flip = domain.CoinTails
	}

	trace := map[string]any{
		"flip":   flip,
		"choice": choice,
	}

	if flip != choice {
		return &Result{Outcome: domain.OutcomeLoss, Multiplier: 0, Trace: trace}, nil
	}
	return &Result{
		Outcome:    domain.OutcomeWin,
		Multiplier: roundMultiplier(2.0 * (1.0 - edge)),
		Trace:      trace,
	}, nil
}
