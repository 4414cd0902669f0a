package betting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ibcplay/ibcplay/internal/domain"
)

func matchDecimal(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(want) })
}

func validRequest() PlaceBetRequest {
	return PlaceBetRequest{
		BetType:   "moneyline",
		Sport:     "football",
		EventName: "United vs City",
		Selection: "United",
		Odds:      decimal.NewFromFloat(2.5),
		Stake:     decimal.NewFromInt(100),
		Currency:  "USD",
	}
}

func pendingBet(ownerID uuid.UUID) *domain.Bet {
	return &domain.Bet{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		BetType:         "moneyline",
		EventName:       "United vs City",
		Selection:       "United",
		Odds:            decimal.NewFromFloat(2.5),
		Stake:           decimal.NewFromInt(100),
		Currency:        "USD",
		PotentialPayout: decimal.NewFromInt(250),
		Status:          domain.BetStatusPending,
	}
}

func TestPlace_FixesPotentialPayoutAtOddsTimesStake(t *testing.T) {
	bets := &MockBets{}
	ledgerMock := &MockLedger{}
	svc := NewService(bets, ledgerMock)
	ownerID := uuid.New()

	ledgerMock.On("LockStake", mock.Anything, ownerID, "USD", matchDecimal(decimal.NewFromInt(100)),
		mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).Return(nil)
	bets.On("CreateBet", mock.Anything, mock.AnythingOfType("*domain.Bet")).Return(nil)

	bet, err := svc.Place(context.Background(), ownerID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.BetStatusPending, bet.Status)
	assert.True(t, bet.PotentialPayout.Equal(decimal.NewFromInt(250)),
		"potential payout %s", bet.PotentialPayout)

	bets.AssertExpectations(t)
	ledgerMock.AssertExpectations(t)
}

func TestPlace_RejectsOddsAtOrBelowEvenMoney(t *testing.T) {
	svc := NewService(&MockBets{}, &MockLedger{})

	for _, odds := range []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromFloat(0.9),
	} {
		req := validRequest()
		req.Odds = odds
		_, err := svc.Place(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidOdds, "odds %s", odds)
	}
}

func TestPlace_RejectsStakeOutOfBounds(t *testing.T) {
	svc := NewService(&MockBets{}, &MockLedger{})

	for _, stake := range []decimal.Decimal{
		decimal.NewFromFloat(0.5),
		decimal.NewFromInt(20000),
	} {
		req := validRequest()
		req.Stake = stake
		_, err := svc.Place(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidStake, "stake %s", stake)
	}
}

func TestPlace_InsufficientFundsDoesNotRecordBet(t *testing.T) {
	bets := &MockBets{}
	ledgerMock := &MockLedger{}
	svc := NewService(bets, ledgerMock)
	ownerID := uuid.New()

	ledgerMock.On("LockStake", mock.Anything, ownerID, "USD", mock.Anything,
		mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).
		Return(domain.ErrInsufficientFunds)

	_, err := svc.Place(context.Background(), ownerID, validRequest())
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	bets.AssertNotCalled(t, "CreateBet", mock.Anything, mock.Anything)
}

func TestPlace_ReleasesStakeWhenRecordingFails(t *testing.T) {
	bets := &MockBets{}
	ledgerMock := &MockLedger{}
	svc := NewService(bets, ledgerMock)
	ownerID := uuid.New()

	ledgerMock.On("LockStake", mock.Anything, ownerID, "USD", mock.Anything,
		mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).Return(nil)
	bets.On("CreateBet", mock.Anything, mock.Anything).Return(assert.AnError)
	ledgerMock.On("ReleaseStake", mock.Anything, ownerID, "USD", mock.Anything,
		mock.AnythingOfType("uuid.UUID")).Return(nil)

	_, err := svc.Place(context.Background(), ownerID, validRequest())
	require.Error(t, err)
	ledgerMock.AssertExpectations(t)
}

func TestResolve_WonPaysPotentialPayout(t *testing.T) {
	bets := &MockBets{}
	ledgerMock := &MockLedger{}
	svc := NewService(bets, ledgerMock)
	ownerID := uuid.New()
	bet := pendingBet(ownerID)

	settled := *bet
	settled.Status = domain.BetStatusWon
	settled.SettledAmount = bet.PotentialPayout

	bets.On("GetBet", mock.Anything, bet.ID).Return(bet, nil).Once()
	ledgerMock.On("Settle", mock.Anything, ownerID, "USD",
		matchDecimal(bet.Stake), matchDecimal(bet.PotentialPayout),
		bet.ID, mock.AnythingOfType("string")).Return(nil)
	bets.On("SettleBetIfPending", mock.Anything, bet.ID, domain.BetStatusWon,
		matchDecimal(bet.PotentialPayout)).Return(1, nil)
	bets.On("GetBet", mock.Anything, bet.ID).Return(&settled, nil).Once()

	result, err := svc.Resolve(context.Background(), bet.ID, "won")
	require.NoError(t, err)

	assert.Equal(t, domain.BetStatusWon, result.Status)
	assert.True(t, result.SettledAmount.Equal(decimal.NewFromInt(250)))
	ledgerMock.AssertExpectations(t)
}

func TestResolve_LostConsumesStake(t *testing.T) {
	bets := &MockBets{}
	ledgerMock := &MockLedger{}
	svc := NewService(bets, ledgerMock)
	ownerID := uuid.New()
	bet := pendingBet(ownerID)

	settled := *bet
	settled.Status = domain.BetStatusLost

	bets.On("GetBet", mock.Anything, bet.ID).Return(bet, nil).Once()
	ledgerMock.On("Settle", mock.Anything, ownerID, "USD",
		matchDecimal(bet.Stake), matchDecimal(decimal.Zero),
		bet.ID, mock.AnythingOfType("string")).Return(nil)
	bets.On("SettleBetIfPending", mock.Anything, bet.ID, domain.BetStatusLost,
		matchDecimal(decimal.Zero)).Return(1, nil)
	bets.On("GetBet", mock.Anything, bet.ID).Return(&settled, nil).Once()

	result, err := svc.Resolve(context.Background(), bet.ID, "lost")
	require.NoError(t, err)
	assert.Equal(t, domain.BetStatusLost, result.Status)
}

func TestResolve_VoidRefundsStake(t *testing.T) {
	bets := &MockBets{}
	ledgerMock := &MockLedger{}
	svc := NewService(bets, ledgerMock)
	ownerID := uuid.New()
	bet := pendingBet(ownerID)

	settled := *bet
	settled.Status = domain.BetStatusVoid
	settled.SettledAmount = bet.Stake

	bets.On("GetBet", mock.Anything, bet.ID).Return(bet, nil).Once()
	ledgerMock.On("ReleaseStake", mock.Anything, ownerID, "USD",
		matchDecimal(bet.Stake), bet.ID).Return(nil)
	bets.On("SettleBetIfPending", mock.Anything, bet.ID, domain.BetStatusVoid,
		matchDecimal(bet.Stake)).Return(1, nil)
	bets.On("GetBet", mock.Anything, bet.ID).Return(&settled, nil).Once()

	result, err := svc.Resolve(context.Background(), bet.ID, "void")
	require.NoError(t, err)
	assert.Equal(t, domain.BetStatusVoid, result.Status)
	ledgerMock.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_RejectsUnknownResult(t *testing.T) {
	svc := NewService(&MockBets{}, &MockLedger{})

	_, err := svc.Resolve(context.Background(), uuid.New(), "cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidResult)
}

func TestResolve_RejectsAlreadySettledBet(t *testing.T) {
	bets := &MockBets{}
	svc := NewService(bets, &MockLedger{})
	bet := pendingBet(uuid.New())
	bet.Status = domain.BetStatusWon

	bets.On("GetBet", mock.Anything, bet.ID).Return(bet, nil)

	_, err := svc.Resolve(context.Background(), bet.ID, "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestResolve_ConcurrentResolverLosesCleanly(t *testing.T) {
	bets := &MockBets{}
	ledgerMock := &MockLedger{}
	svc := NewService(bets, ledgerMock)
	bet := pendingBet(uuid.New())

	// Both resolvers read the bet while pending; the ledger admits only one
	bets.On("GetBet", mock.Anything, bet.ID).Return(bet, nil)
	ledgerMock.On("Settle", mock.Anything, bet.OwnerID, "USD",
		mock.Anything, mock.Anything, bet.ID, mock.AnythingOfType("string")).
		Return(domain.ErrAlreadySettled)

	_, err := svc.Resolve(context.Background(), bet.ID, "won")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	bets.AssertNotCalled(t, "SettleBetIfPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
