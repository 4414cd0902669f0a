package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ibcplay/ibcplay/internal/betting"
	"github.com/ibcplay/ibcplay/internal/casino"
	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/prices"
	"github.com/ibcplay/ibcplay/internal/repository"
	"github.com/ibcplay/ibcplay/internal/user"
)

// MockUserService implements [user.Service]
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req user.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockLedgerService implements [ledger.Service]
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Deposit(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Convert(ctx context.Context, ownerID uuid.UUID, fromCurrency, toCurrency string, amount decimal.Decimal) (*domain.Conversion, error) {
	args := m.Called(ctx, ownerID, fromCurrency, toCurrency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

func (m *MockLedgerService) LockStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID, description string) error {
	args := m.Called(ctx, ownerID, currency, amount, referenceID, description)
	return args.Error(0)
}

func (m *MockLedgerService) ReleaseStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID) error {
	args := m.Called(ctx, ownerID, currency, amount, referenceID)
	return args.Error(0)
}

func (m *MockLedgerService) Settle(ctx context.Context, ownerID uuid.UUID, currency string, stake, payout decimal.Decimal, referenceID uuid.UUID, description string) error {
	args := m.Called(ctx, ownerID, currency, stake, payout, referenceID, description)
	return args.Error(0)
}

func (m *MockLedgerService) Wallets(ctx context.Context, ownerID uuid.UUID) ([]domain.WalletBalance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletBalance), args.Error(1)
}

func (m *MockLedgerService) Transactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockCasinoService implements [casino.Service]
type MockCasinoService struct {
	mock.Mock
}

func (m *MockCasinoService) Games() []casino.GameInfo {
	args := m.Called()
	return args.Get(0).([]casino.GameInfo)
}

func (m *MockCasinoService) Play(ctx context.Context, ownerID uuid.UUID, game domain.Game, currency string, stake decimal.Decimal, opts domain.PlayOptions) (*domain.CasinoRound, error) {
	args := m.Called(ctx, ownerID, game, currency, stake, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasinoRound), args.Error(1)
}

func (m *MockCasinoService) History(ctx context.Context, filter repository.RoundFilter) ([]domain.CasinoRound, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CasinoRound), args.Error(1)
}

func (m *MockCasinoService) Stats(ctx context.Context, ownerID uuid.UUID) (*domain.CasinoStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasinoStats), args.Error(1)
}

func (m *MockCasinoService) RecoverUnsettled(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockBettingService implements [betting.Service]
type MockBettingService struct {
	mock.Mock
}

func (m *MockBettingService) Place(ctx context.Context, ownerID uuid.UUID, req betting.PlaceBetRequest) (*domain.Bet, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bet), args.Error(1)
}

func (m *MockBettingService) Resolve(ctx context.Context, betID uuid.UUID, result string) (*domain.Bet, error) {
	args := m.Called(ctx, betID, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bet), args.Error(1)
}

func (m *MockBettingService) Get(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bet), args.Error(1)
}

func (m *MockBettingService) History(ctx context.Context, filter repository.BetFilter) ([]domain.Bet, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

// MockPricesService implements [prices.Service]
type MockPricesService struct {
	mock.Mock
}

func (m *MockPricesService) GetRate(ctx context.Context, currency string) (prices.Quote, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(prices.Quote), args.Error(1)
}

func (m *MockPricesService) GetAllRates(ctx context.Context) (map[string]prices.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]prices.Quote), args.Error(1)
}

func (m *MockPricesService) IsSupported(currency string) bool {
	args := m.Called(currency)
	return args.Bool(0)
}

func (m *MockPricesService) SupportedCurrencies() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// MockPool implements [database.Pool]
type MockPool struct {
	mock.Mock
}

func (m *MockPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPool) Close() {
	m.Called()
}
