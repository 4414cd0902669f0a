package games

import "github.com/ibcplay/ibcplay/internal/domain"

// drawCard deals one rank from an effectively infinite shoe.
func (e *Engine) drawCard() string {
	return blackjackRanks[e.rng.IntN(len(blackjackRanks))]
}

// handValue totals a hand, demoting aces from 11 to 1 while busted.
func handValue(cards []string) int {
	total := 0
	aces := 0
	for _, c := range cards {
		total += blackjackValues[c]
		if c == "A" {
			aces++
		}
	}
	for total > blackjackBust && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// playBlackjack deals a simplified auto-played hand: both player and dealer
// draw to the stand value, then totals are compared. A win pays double less
// the house edge; equal totals push the stake back.
func (e *Engine) playBlackjack(edge float64) (*Result, error) {
	player := []string{e.drawCard(), e.drawCard()}
	dealer := []string{e.drawCard(), e.drawCard()}

	for handValue(player) < blackjackStandValue {
		player = append(player, e.drawCard())
	}
	for handValue(dealer) < blackjackStandValue {
		dealer = append(dealer, e.drawCard())
	}

	pv := handValue(player)
	dv := handValue(dealer)

	trace := map[string]any{
		"player_cards": player,
		"dealer_cards": dealer,
		"player_value": pv,
		"dealer_value": dv,
	}

	playerBust := pv > blackjackBust
	dealerBust := dv > blackjackBust

	switch {
	case playerBust:
		return &Result{Outcome: domain.OutcomeLoss, Multiplier: 0, Trace: trace}, nil
	case dealerBust || pv > dv:
		return &Result{
			Outcome:    domain.OutcomeWin,
			Multiplier: roundMultiplier(blackjackWinMult * (1.0 - edge)),
			Trace:      trace,
		}, nil
	case pv == dv:
		return &Result{Outcome: domain.OutcomePush, Multiplier: 1, Trace: trace}, nil
	default:
		return &Result{Outcome: domain.OutcomeLoss, Multiplier: 0, Trace: trace}, nil
	}
}
