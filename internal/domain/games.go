package domain

import (
	"fmt"
	"strings"
)

// Game identifies a casino game type
type Game string

const (
	GameDice      Game = "dice"
	GameCoinflip  Game = "coinflip"
	GameSlots     Game = "slots"
	GameRoulette  Game = "roulette"
	GameCrash     Game = "crash"
	GameBlackjack Game = "blackjack"
)

// Games lists every playable game in catalog order.
var Games = []Game{GameDice, GameCoinflip, GameSlots, GameRoulette, GameCrash, GameBlackjack}

// ParseGame normalizes and validates a game name
func ParseGame(name string) (Game, error) {
	g := Game(strings.ToLower(name))
	for _, known := range Games {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownGame, name)
}

// Dice prediction directions
const (
	DiceOver  = "over"
	DiceUnder = "under"
)

// Coinflip sides
const (
	CoinHeads = "heads"
	CoinTails = "tails"
)

// Roulette bet types
const (
	RouletteBetRed    = "red"
	RouletteBetBlack  = "black"
	RouletteBetOdd    = "odd"
	RouletteBetEven   = "even"
	RouletteBetNumber = "number"
)

// DiceOptions selects a win region on the 0-100 roll range.
type DiceOptions struct {
	Prediction string  `json:"prediction"`
	Target     float64 `json:"target"`
}

// CoinflipOptions picks a side.
type CoinflipOptions struct {
	Choice string `json:"choice"`
}

// RouletteOptions selects a bet type; Value is only meaningful for number bets.
type RouletteOptions struct {
	BetType string `json:"bet_type"`
	Value   *int   `json:"value,omitempty"`
}

// CrashOptions pre-commits the cashout multiplier.
type CrashOptions struct {
	CashoutAt float64 `json:"cashout_at"`
}

// PlayOptions is a tagged union of per-game options keyed by the game type.
// Exactly the variant matching the game is set; slots and blackjack carry no
// options. Validate rejects malformed variants before any balance mutation.
type PlayOptions struct {
	Dice     *DiceOptions     `json:"dice,omitempty"`
	Coinflip *CoinflipOptions `json:"coinflip,omitempty"`
	Roulette *RouletteOptions `json:"roulette,omitempty"`
	Crash    *CrashOptions    `json:"crash,omitempty"`
}

// Validate checks the options variant required by game. Games without
// options accept an empty union.
func (o PlayOptions) Validate(game Game) error {
	switch game {
	case GameDice:
		if o.Dice == nil {
			return fmt.Errorf("%w: dice options required", ErrInvalidTarget)
		}
		if o.Dice.Prediction != DiceOver && o.Dice.Prediction != DiceUnder {
			return fmt.Errorf("%w: prediction must be %q or %q", ErrInvalidTarget, DiceOver, DiceUnder)
		}
		// Both win regions keep at least a 1% window, which also caps the
		// multiplier at 100x fair odds
		if o.Dice.Target < 1 || o.Dice.Target > 99 {
			return fmt.Errorf("%w: target must be between 1 and 99", ErrInvalidTarget)
		}
	case GameCoinflip:
		if o.Coinflip == nil {
			return fmt.Errorf("%w: coinflip options required", ErrInvalidTarget)
		}
		choice := strings.ToLower(o.Coinflip.Choice)
		if choice != CoinHeads && choice != CoinTails {
			return fmt.Errorf("%w: choice must be %q or %q", ErrInvalidTarget, CoinHeads, CoinTails)
		}
	case GameRoulette:
		if o.Roulette == nil {
			return fmt.Errorf("%w: roulette options required", ErrInvalidTarget)
		}
		switch o.Roulette.BetType {
		case RouletteBetRed, RouletteBetBlack, RouletteBetOdd, RouletteBetEven:
		case RouletteBetNumber:
			if o.Roulette.Value == nil || *o.Roulette.Value < 0 || *o.Roulette.Value > 36 {
				return fmt.Errorf("%w: number bet requires value 0-36", ErrInvalidTarget)
			}
		default:
			return fmt.Errorf("%w: unknown bet type %q", ErrInvalidTarget, o.Roulette.BetType)
		}
	case GameCrash:
		if o.Crash == nil {
			return fmt.Errorf("%w: crash options required", ErrInvalidTarget)
		}
		if o.Crash.CashoutAt < 1 || o.Crash.CashoutAt > 100 {
			return fmt.Errorf("%w: cashout must be between 1 and 100", ErrInvalidTarget)
		}
	case GameSlots, GameBlackjack:
		// no options
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}
	return nil
}
