package games

import (
	"fmt"
	"math"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// Result is the outcome of a single round. Multiplier is applied to the
// stake to produce the payout: 0 on a loss, 1 on a push.
type Result struct {
	Outcome    domain.Outcome
	Multiplier float64
	Trace      map[string]any
}

// Engine computes round outcomes. It holds no per-round state; all
// randomness comes from the injected Rand so outcomes are reproducible
// under test.
type Engine struct {
	edges map[domain.Game]float64
	rng   Rand
}

// NewEngine creates an engine with the default house edges and a
// crypto-backed randomness source.
func NewEngine() *Engine {
	return &Engine{edges: DefaultHouseEdges, rng: NewCryptoRand()}
}

// NewEngineWithRand creates an engine with an injected randomness source.
func NewEngineWithRand(rng Rand) *Engine {
	return &Engine{edges: DefaultHouseEdges, rng: rng}
}

// Play validates the options for the given game and computes one outcome.
func (e *Engine) Play(game domain.Game, opts domain.PlayOptions) (*Result, error) {
	if err := opts.Validate(game); err != nil {
		return nil, err
	}

	edge := e.edges[game]

	switch game {
	case domain.GameDice:
		return e.playDice(*opts.Dice, edge)
	case domain.GameCoinflip:
		return e.playCoinflip(*opts.Coinflip, edge)
	case domain.GameSlots:
		return e.playSlots(edge)
	case domain.GameRoulette:
		return e.playRoulette(*opts.Roulette)
	case domain.GameCrash:
		return e.playCrash(*opts.Crash, edge)
	case domain.GameBlackjack:
		return e.playBlackjack(edge)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownGame, game)
	}
}

// HouseEdge returns the configured edge for a game.
func (e *Engine) HouseEdge(game domain.Game) float64 {
	return e.edges[game]
}

// MaxMultiplier returns the largest payout multiplier a game can produce.
func (e *Engine) MaxMultiplier(game domain.Game) float64 {
	return MaxMultipliers[game]
}

// roundMultiplier truncates noise from float arithmetic so the payout math
// downstream sees at most four decimal places.
func roundMultiplier(m float64) float64 {
	return math.Round(m*10000) / 10000
}
