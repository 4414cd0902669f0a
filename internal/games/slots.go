package games

import "github.com/ibcplay/ibcplay/internal/domain"

// spinSymbol draws one reel position from the weighted symbol table.
func (e *Engine) spinSymbol() slotSymbol {
	draw := e.rng.IntN(slotTotalWeight)
	for _, sym := range slotReel {
		if draw < sym.Weight {
			return sym
		}
		draw -= sym.Weight
	}
	// Unreachable while weights sum to slotTotalWeight.
	return slotReel[len(slotReel)-1]
}

// playSlots spins three weighted reels. Three of a kind pays the symbol's
// table multiplier reduced by the house edge; exactly two matching reels
// pay a flat consolation multiplier.
func (e *Engine) playSlots(edge float64) (*Result, error) {
	reels := make([]slotSymbol, slotReelCount)
	names := make([]string, slotReelCount)
	for i := range reels {
		reels[i] = e.spinSymbol()
		names[i] = reels[i].Name
	}

	trace := map[string]any{"reels": names}

	if names[0] == names[1] && names[1] == names[2] {
		return &Result{
			Outcome:    domain.OutcomeWin,
			Multiplier: roundMultiplier(reels[0].Payout * (1.0 - edge)),
			Trace:      trace,
		}, nil
	}

	if names[0] == names[1] || names[1] == names[2] || names[0] == names[2] {
		return &Result{
			Outcome:    domain.OutcomeWin,
			Multiplier: SlotsTwoMatchMultiplier,
			Trace:      trace,
		}, nil
	}

	return &Result{Outcome: domain.OutcomeLoss, Multiplier: 0, Trace: trace}, nil
}
