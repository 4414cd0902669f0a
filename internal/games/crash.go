package games

import (
	"math"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// playCrash draws a crash point from an inverse-uniform distribution shaped
// by the house edge, clamped to [1, 100]. The player wins their chosen
// cashout multiplier when the rocket survives past it.
func (e *Engine) playCrash(opts domain.CrashOptions, edge float64) (*Result, error) {
	r := e.rng.Float64()
	crashPoint := (1.0 - edge) / (1.0 - r)
	crashPoint = math.Max(crashPointMin, math.Min(crashPointMax, crashPoint))
	crashPoint = math.Round(crashPoint*100) / 100

	trace := map[string]any{
		"crash_point": crashPoint,
		"cashout_at":  opts.CashoutAt,
	}

	if crashPoint < opts.CashoutAt {
		return &Result{Outcome: domain.OutcomeLoss, Multiplier: 0, Trace: trace}, nil
	}
	return &Result{
		Outcome:    domain.OutcomeWin,
		Multiplier: roundMultiplier(opts.CashoutAt),
		Trace:      trace,
	}, nil
}
