package games

import "github.com/ibcplay/ibcplay/internal/domain"

// Per-game house edges. The roulette edge is 0 because the zero pocket
// already gives the house its margin; applying an edge factor on top
// would double-charge the player.
const (
	DiceHouseEdge      = 0.02
	CoinflipHouseEdge  = 0.02
	SlotsHouseEdge     = 0.05
	RouletteHouseEdge  = 0.0
	CrashHouseEdge     = 0.02
	BlackjackHouseEdge = 0.03
)

// DefaultHouseEdges maps each game to its configured edge.
var DefaultHouseEdges = map[domain.Game]float64{
	domain.GameDice:      DiceHouseEdge,
	domain.GameCoinflip:  CoinflipHouseEdge,
	domain.GameSlots:     SlotsHouseEdge,
	domain.GameRoulette:  RouletteHouseEdge,
	domain.GameCrash:     CrashHouseEdge,
	domain.GameBlackjack: BlackjackHouseEdge,
}

// MaxMultipliers is the largest payout multiplier each game can produce,
// published in the game catalog.
var MaxMultipliers = map[domain.Game]float64{
	domain.GameDice:      100.0 * (1.0 - DiceHouseEdge),
	domain.GameCoinflip:  2.0 * (1.0 - CoinflipHouseEdge),
	domain.GameSlots:     100.0 * (1.0 - SlotsHouseEdge),
	domain.GameRoulette:  rouletteNumberMultiplier,
	domain.GameCrash:     crashPointMax,
	domain.GameBlackjack: blackjackWinMult * (1.0 - BlackjackHouseEdge),
}

// Dice rolls are drawn in hundredths of a point so the win boundary at an
// integer target is exact.
const diceRollGranularity = 10000

// slotSymbol pairs a reel symbol with its draw weight and three-of-a-kind
// payout multiplier (before the house edge is applied).
type slotSymbol struct {
	Name   string
	Weight int
	Payout float64
}

// slotReel is ordered rarest-last; weights sum to slotTotalWeight.
var slotReel = []slotSymbol{
	{Name: "cherry", Weight: 40, Payout: 2},
	{Name: "lemon", Weight: 30, Payout: 3},
	{Name: "orange", Weight: 20, Payout: 5},
	{Name: "grape", Weight: 15, Payout: 10},
	{Name: "bell", Weight: 10, Payout: 20},
	{Name: "diamond", Weight: 5, Payout: 50},
	{Name: "seven", Weight: 2, Payout: 100},
}

const slotTotalWeight = 122

// SlotsTwoMatchMultiplier is the flat consolation payout when exactly two
// reels match.
const SlotsTwoMatchMultiplier = 1.5

const slotReelCount = 3

// Roulette wheel layout (European single-zero).
const roulettePockets = 37

var rouletteRedNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Roulette payout multipliers on the stake.
const (
	rouletteNumberMultiplier    = 36.0
	rouletteEvenMoneyMultiplier = 2.0
)

// Crash point bounds after applying the edge formula.
const (
	crashPointMin = 1.0
	crashPointMax = 100.0
)

// Blackjack dealing rules: both hands draw until reaching the stand value.
const (
	blackjackStandValue = 17
	blackjackBust       = 21
	blackjackWinMult    = 2.0
)

var blackjackRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var blackjackValues = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"10": 10, "J": 10, "Q": 10, "K": 10, "A": 11,
}
