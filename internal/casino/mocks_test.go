package casino

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/prices"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// MockRounds implements [repository.Rounds]
type MockRounds struct {
	mock.Mock
}

func (m *MockRounds) CreateRound(ctx context.Context, round *domain.CasinoRound) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockRounds) GetRound(ctx context.Context, id uuid.UUID) (*domain.CasinoRound, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasinoRound), args.Error(1)
}

func (m *MockRounds) UpdateRoundStateIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.RoundState) (int64, error) {
	args := m.Called(ctx, id, expected, next)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockRounds) SaveRoundOutcome(ctx context.Context, id uuid.UUID, outcome domain.Outcome, multiplier float64, payout decimal.Decimal, trace json.RawMessage) (int64, error) {
	args := m.Called(ctx, id, outcome, multiplier, payout, trace)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockRounds) ListRounds(ctx context.Context, filter repository.RoundFilter) ([]domain.CasinoRound, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CasinoRound), args.Error(1)
}

func (m *MockRounds) ListUnsettledRounds(ctx context.Context, olderThan time.Time, limit int) ([]domain.CasinoRound, error) {
	args := m.Called(ctx, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CasinoRound), args.Error(1)
}

func (m *MockRounds) GetStats(ctx context.Context, ownerID uuid.UUID) (*domain.CasinoStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CasinoStats), args.Error(1)
}

// MockLedger implements [ledger.Service]
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Deposit(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedger) Withdraw(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedger) Convert(ctx context.Context, ownerID uuid.UUID, fromCurrency, toCurrency string, amount decimal.Decimal) (*domain.Conversion, error) {
	args := m.Called(ctx, ownerID, fromCurrency, toCurrency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

func (m *MockLedger) LockStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID, description string) error {
	args := m.Called(ctx, ownerID, currency, amount, referenceID, description)
	return args.Error(0)
}

func (m *MockLedger) ReleaseStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID) error {
	args := m.Called(ctx, ownerID, currency, amount, referenceID)
	return args.Error(0)
}

func (m *MockLedger) Settle(ctx context.Context, ownerID uuid.UUID, currency string, stake, payout decimal.Decimal, referenceID uuid.UUID, description string) error {
	args := m.Called(ctx, ownerID, currency, stake, payout, referenceID, description)
	return args.Error(0)
}

func (m *MockLedger) Wallets(ctx context.Context, ownerID uuid.UUID) ([]domain.WalletBalance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletBalance), args.Error(1)
}

func (m *MockLedger) Transactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// stubPrices serves fixed USD rates
type stubPrices struct{}

func (stubPrices) GetRate(_ context.Context, currency string) (prices.Quote, error) {
	if currency == prices.USD {
		return prices.Quote{Currency: currency, USDRate: decimal.NewFromInt(1), AsOf: time.Now()}, nil
	}
	return prices.Quote{}, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, currency)
}

func (s stubPrices) GetAllRates(context.Context) (map[string]prices.Quote, error) {
	return map[string]prices.Quote{}, nil
}

func (stubPrices) IsSupported(currency string) bool { return currency == prices.USD }

func (stubPrices) SupportedCurrencies() []string { return []string{prices.USD} }
