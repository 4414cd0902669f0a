package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// scriptRand replays a fixed sequence of draws so a test can pin the exact
// outcome of a round.
type scriptRand struct {
	ints   []int
	floats []float64
}

func (r *scriptRand) IntN(n int) int {
	if len(r.ints) == 0 {
		panic("scriptRand: out of int draws")
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		panic("scriptRand: scripted draw out of range")
	}
	return v
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		panic("scriptRand: out of float draws")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func scripted(ints []int, floats []float64) *Engine {
	return NewEngineWithRand(&scriptRand{ints: ints, floats: floats})
}

func TestPlay_RejectsInvalidOptions(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name string
		game domain.Game
		opts domain.PlayOptions
	}{
		{"dice missing options", domain.GameDice, domain.PlayOptions{}},
		{"dice target too high", domain.GameDice, domain.PlayOptions{
			Dice: &domain.DiceOptions{Prediction: domain.DiceOver, Target: 100},
		}},
		{"dice bad prediction", domain.GameDice, domain.PlayOptions{
			Dice: &domain.DiceOptions{Prediction: "sideways", Target: 50},
		}},
		{"coinflip bad choice", domain.GameCoinflip, domain.PlayOptions{
			Coinflip: &domain.CoinflipOptions{Choice: "edge"},
		}},
		{"roulette number without value", domain.GameRoulette, domain.PlayOptions{
			Roulette: &domain.RouletteOptions{BetType: domain.RouletteBetNumber},
		}},
		{"crash cashout below 1", domain.GameCrash, domain.PlayOptions{
			Crash: &domain.CrashOptions{CashoutAt: 0.5},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Play(tt.game, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidTarget)
		})
	}
}

func TestPlay_UnknownGame(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Play(domain.Game("baccarat"), domain.PlayOptions{})
	assert.ErrorIs(t, err, domain.ErrUnknownGame)
}

func TestDice_WinMultiplierMatchesWindow(t *testing.T) {
	// Roll 99.99 over target 70: a 30-point window pays 100/30 less the edge.
	engine := scripted([]int{9999}, nil)
	result, err := engine.Play(domain.GameDice, domain.PlayOptions{
		Dice: &domain.DiceOptions{Prediction: domain.DiceOver, Target: 70},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.InDelta(t, (100.0/30.0)*(1.0-DiceHouseEdge), result.Multiplier, 0.0001)
	assert.Equal(t, 99.99, result.Trace["roll"])
}

func TestDice_RollEqualToTargetLosesBothWays(t *testing.T) {
	for _, prediction := range []string{domain.DiceOver, domain.DiceUnder} {
		engine := scripted([]int{7000}, nil) // roll lands exactly on 70.00
		result, err := engine.Play(domain.GameDice, domain.PlayOptions{
			Dice: &domain.DiceOptions{Prediction: prediction, Target: 70},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeLoss, result.Outcome, "prediction %s", prediction)
		assert.Zero(t, result.Multiplier)
	}
}

func TestDice_UnderWin(t *testing.T) {
	engine := scripted([]int{1234}, nil) // roll 12.34 under target 30
	result, err := engine.Play(domain.GameDice, domain.PlayOptions{
		Dice: &domain.DiceOptions{Prediction: domain.DiceUnder, Target: 30},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.InDelta(t, (100.0/30.0)*(1.0-DiceHouseEdge), result.Multiplier, 0.0001)
}

func TestDice_WinRateApproximatesWindow(t *testing.T) {
	engine := NewEngineWithRand(NewSeededRand(42))
	opts := domain.PlayOptions{
		Dice: &domain.DiceOptions{Prediction: domain.DiceOver, Target: 50},
	}

	const rounds = 10000
	wins := 0
	for i := 0; i < rounds; i++ {
		result, err := engine.Play(domain.GameDice, opts)
		require.NoError(t, err)
		if result.Outcome == domain.OutcomeWin {
			wins++
		}
	}

	assert.InDelta(t, 0.5, float64(wins)/rounds, 0.03)
}

func TestCoinflip_Outcomes(t *testing.T) {
	// Draw 0 is heads, draw 1 is tails.
	engine := scripted([]int{0}, nil)
	result, err := engine.Play(domain.GameCoinflip, domain.PlayOptions{
		Coinflip: &domain.CoinflipOptions{Choice: "HEADS"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.InDelta(t, 2.0*(1.0-CoinflipHouseEdge), result.Multiplier, 0.0001)

	engine = scripted([]int{0}, nil)
	result, err = engine.Play(domain.GameCoinflip, domain.PlayOptions{
		Coinflip: &domain.CoinflipOptions{Choice: domain.CoinTails},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeLoss, result.Outcome)
	assert.Zero(t, result.Multiplier)
}

func TestSlots_ThreeOfAKind(t *testing.T) {
	// Three draws below the cherry weight land three cherries.
	engine := scripted([]int{0, 39, 5}, nil)
	result, err := engine.Play(domain.GameSlots, domain.PlayOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.InDelta(t, 2.0*(1.0-SlotsHouseEdge), result.Multiplier, 0.0001)
	assert.Equal(t, []string{"cherry", "cherry", "cherry"}, result.Trace["reels"])
}

func TestSlots_TwoMatchPaysFlatConsolation(t *testing.T) {
	// cherry, cherry, lemon
	engine := scripted([]int{0, 10, 45}, nil)
	result, err := engine.Play(domain.GameSlots, domain.PlayOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.Equal(t, SlotsTwoMatchMultiplier, result.Multiplier)
}

func TestSlots_NoMatchLoses(t *testing.T) {
	// cherry, lemon, grape
	engine := scripted([]int{0, 45, 95}, nil)
	result, err := engine.Play(domain.GameSlots, domain.PlayOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeLoss, result.Outcome)
	assert.Zero(t, result.Multiplier)
}

func TestSlots_RarestSymbolPaysTop(t *testing.T) {
	// The last weight unit in the table is the seven.
	engine := scripted([]int{121, 121, 121}, nil)
	result, err := engine.Play(domain.GameSlots, domain.PlayOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.InDelta(t, 100.0*(1.0-SlotsHouseEdge), result.Multiplier, 0.0001)
}

func TestRoulette_ZeroPocketLosesOutsideBets(t *testing.T) {
	outside := []string{
		domain.RouletteBetRed,
		domain.RouletteBetBlack,
		domain.RouletteBetOdd,
		domain.RouletteBetEven,
	}

	for _, betType := range outside {
		engine := scripted([]int{0}, nil)
		result, err := engine.Play(domain.GameRoulette, domain.PlayOptions{
			Roulette: &domain.RouletteOptions{BetType: betType},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeLoss, result.Outcome, "bet type %s", betType)
	}
}

func TestRoulette_NumberBetPaysThirtySix(t *testing.T) {
	value := 17
	engine := scripted([]int{17}, nil)
	result, err := engine.Play(domain.GameRoulette, domain.PlayOptions{
		Roulette: &domain.RouletteOptions{BetType: domain.RouletteBetNumber, Value: &value},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.Equal(t, rouletteNumberMultiplier, result.Multiplier)
}

func TestRoulette_EvenMoneyBets(t *testing.T) {
	tests := []struct {
		name    string
		pocket  int
		betType string
		want    domain.Outcome
	}{
		{"red on red pocket", 32, domain.RouletteBetRed, domain.OutcomeWin},
		{"red on black pocket", 17, domain.RouletteBetRed, domain.OutcomeLoss},
		{"black on black pocket", 17, domain.RouletteBetBlack, domain.OutcomeWin},
		{"odd on odd pocket", 9, domain.RouletteBetOdd, domain.OutcomeWin},
		{"even on odd pocket", 9, domain.RouletteBetEven, domain.OutcomeLoss},
		{"even on even pocket", 22, domain.RouletteBetEven, domain.OutcomeWin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := scripted([]int{tt.pocket}, nil)
			result, err := engine.Play(domain.GameRoulette, domain.PlayOptions{
				Roulette: &domain.RouletteOptions{BetType: tt.betType},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Outcome)
			if tt.want == domain.OutcomeWin {
				assert.Equal(t, rouletteEvenMoneyMultiplier, result.Multiplier)
			}
		})
	}
}

func TestCrash_CashoutBeforeCrashWins(t *testing.T) {
	// r=0.5 puts the crash point at 1.96.
	engine := scripted(nil, []float64{0.5})
	result, err := engine.Play(domain.GameCrash, domain.PlayOptions{
		Crash: &domain.CrashOptions{CashoutAt: 1.5},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.Equal(t, 1.5, result.Multiplier)
	assert.Equal(t, 1.96, result.Trace["crash_point"])
}

func TestCrash_CashoutPastCrashLoses(t *testing.T) {
	engine := scripted(nil, []float64{0.9}) // crash point 9.8
	result, err := engine.Play(domain.GameCrash, domain.PlayOptions{
		Crash: &domain.CrashOptions{CashoutAt: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeLoss, result.Outcome)
	assert.Zero(t, result.Multiplier)
}

func TestCrash_PointStaysInBounds(t *testing.T) {
	engine := NewEngineWithRand(NewSeededRand(7))
	opts := domain.PlayOptions{Crash: &domain.CrashOptions{CashoutAt: 2}}

	for i := 0; i < 1000; i++ {
		result, err := engine.Play(domain.GameCrash, opts)
		require.NoError(t, err)
		point := result.Trace["crash_point"].(float64)
		assert.GreaterOrEqual(t, point, crashPointMin)
		assert.LessOrEqual(t, point, crashPointMax)
	}
}

func TestBlackjack_HandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		want  int
	}{
		{"simple total", []string{"10", "7"}, 17},
		{"face cards", []string{"K", "Q"}, 20},
		{"soft ace stays high", []string{"A", "8"}, 19},
		{"ace demotes past 21", []string{"A", "9", "5"}, 15},
		{"double ace demotes once", []string{"A", "A", "9"}, 21},
		{"double ace demotes twice", []string{"A", "A", "K"}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, handValue(tt.cards))
		})
	}
}

func TestBlackjack_PlayerWinPaysDoubleLessEdge(t *testing.T) {
	// Ranks by index: player K,Q (20), dealer 10,7 (17). Both stand.
	engine := scripted([]int{11, 10, 8, 5}, nil)
	result, err := engine.Play(domain.GameBlackjack, domain.PlayOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeWin, result.Outcome)
	assert.InDelta(t, 2.0*(1.0-BlackjackHouseEdge), result.Multiplier, 0.0001)
	assert.Equal(t, 20, result.Trace["player_value"])
	assert.Equal(t, 17, result.Trace["dealer_value"])
}

func TestBlackjack_EqualTotalsPush(t *testing.T) {
	// Player K,10 and dealer Q,J both stand on 20.
	engine := scripted([]int{11, 8, 10, 9}, nil)
	result, err := engine.Play(domain.GameBlackjack, domain.PlayOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomePush, result.Outcome)
	assert.Equal(t, 1.0, result.Multiplier)
}

func TestMaxMultiplier_MatchesTopPayouts(t *testing.T) {
	seventeen := 17
	tests := []struct {
		name   string
		game   domain.Game
		engine *Engine
		opts   domain.PlayOptions
	}{
		{"blackjack win", domain.GameBlackjack, scripted([]int{11, 10, 8, 5}, nil), domain.PlayOptions{}},
		{"slots sevens", domain.GameSlots, scripted([]int{121, 121, 121}, nil), domain.PlayOptions{}},
		{"roulette number", domain.GameRoulette, scripted([]int{17}, nil), domain.PlayOptions{
			Roulette: &domain.RouletteOptions{BetType: domain.RouletteBetNumber, Value: &seventeen},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.engine.Play(tt.game, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, domain.OutcomeWin, result.Outcome)
			assert.InDelta(t, tt.engine.MaxMultiplier(tt.game), result.Multiplier, 0.0001)
		})
	}
}

func TestBlackjack_PlayerBustLosesEvenIfDealerBusts(t *testing.T) {
	// Player 10,6 draws K and busts; dealer 10,6 draws K and busts too.
	engine := scripted([]int{8, 4, 8, 4, 11, 11}, nil)
	result, err := engine.Play(domain.GameBlackjack, domain.PlayOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeLoss, result.Outcome)
	assert.Zero(t, result.Multiplier)
}
