package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/prices"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// fakeLedger is an in-memory repository.Ledger. A single mutex stands in
// for the row lock: the first GetWalletForUpdate in a transaction acquires
// it and Commit/Rollback releases it, so concurrent mutations serialize the
// same way they do against the database.
type fakeLedger struct {
	mu      sync.Mutex
	wallets map[string]domain.Wallet
	journal []domain.Transaction
	settled map[string]bool
	nextID  int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		wallets: make(map[string]domain.Wallet),
		settled: make(map[string]bool),
	}
}

func walletKey(ownerID uuid.UUID, currency string) string {
	return ownerID.String() + "|" + currency
}

func (f *fakeLedger) seedWallet(ownerID uuid.UUID, currency string, available, locked decimal.Decimal) {
	f.wallets[walletKey(ownerID, currency)] = domain.Wallet{
		OwnerID:   ownerID,
		Currency:  currency,
		Available: available,
		Locked:    locked,
		UpdatedAt: time.Now(),
	}
}

func (f *fakeLedger) GetWallet(_ context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[walletKey(ownerID, currency)]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrWalletNotFound, ownerID, currency)
	}
	return &w, nil
}

func (f *fakeLedger) ListWallets(_ context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var wallets []domain.Wallet
	for _, w := range f.wallets {
		if w.OwnerID == ownerID {
			wallets = append(wallets, w)
		}
	}
	return wallets, nil
}

func (f *fakeLedger) ListTransactions(_ context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var txns []domain.Transaction
	for i := len(f.journal) - 1; i >= 0; i-- {
		t := f.journal[i]
		if t.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Kind != nil && t.Kind != *filter.Kind {
			continue
		}
		txns = append(txns, t)
		if filter.Limit > 0 && len(txns) == filter.Limit {
			break
		}
	}
	return txns, nil
}

func (f *fakeLedger) BeginLedgerTx(_ context.Context) (repository.LedgerTx, error) {
	return &fakeLedgerTx{repo: f, staged: make(map[string]domain.Wallet)}, nil
}

type fakeLedgerTx struct {
	repo   *fakeLedger
	locked bool
	done   bool
	staged map[string]domain.Wallet
	txns   []*domain.Transaction
}

func (t *fakeLedgerTx) lock() {
	if !t.locked {
		t.repo.mu.Lock()
		t.locked = true
	}
}

func (t *fakeLedgerTx) release() {
	if t.locked {
		t.repo.mu.Unlock()
		t.locked = false
	}
}

func (t *fakeLedgerTx) GetWalletForUpdate(_ context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error) {
	t.lock()
	key := walletKey(ownerID, currency)
	if w, ok := t.staged[key]; ok {
		return &w, nil
	}
	w, ok := t.repo.wallets[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrWalletNotFound, ownerID, currency)
	}
	return &w, nil
}

func (t *fakeLedgerTx) CreateWallet(_ context.Context, wallet *domain.Wallet) error {
	t.lock()
	key := walletKey(wallet.OwnerID, wallet.Currency)
	if _, ok := t.repo.wallets[key]; ok {
		return fmt.Errorf("%w: wallet exists", domain.ErrConflict)
	}
	wallet.UpdatedAt = time.Now()
	t.staged[key] = *wallet
	return nil
}

func (t *fakeLedgerTx) UpdateWalletBalances(_ context.Context, ownerID uuid.UUID, currency string, available, locked decimal.Decimal) error {
	t.lock()
	if available.IsNegative() || locked.IsNegative() {
		return fmt.Errorf("%w: balance check", domain.ErrInsufficientFunds)
	}
	key := walletKey(ownerID, currency)
	w, ok := t.staged[key]
	if !ok {
		w, ok = t.repo.wallets[key]
		if !ok {
			return fmt.Errorf("%w: %s %s", domain.ErrWalletNotFound, ownerID, currency)
		}
	}
	w.Available = available
	w.Locked = locked
	w.UpdatedAt = time.Now()
	t.staged[key] = w
	return nil
}

func (t *fakeLedgerTx) AppendTransaction(_ context.Context, txn *domain.Transaction) error {
	t.lock()
	if txn.ReferenceID != nil &&
		(txn.Kind == domain.TransactionPayout || txn.Kind == domain.TransactionStakeRelease) {
		if t.repo.settled[txn.ReferenceID.String()] {
			return fmt.Errorf("%w: %s", domain.ErrAlreadySettled, txn.ReferenceID)
		}
	}
	t.txns = append(t.txns, txn)
	return nil
}

func (t *fakeLedgerTx) Commit(_ context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	defer t.release()

	for key, w := range t.staged {
		t.repo.wallets[key] = w
	}
	for _, txn := range t.txns {
		t.repo.nextID++
		txn.ID = t.repo.nextID
		txn.CreatedAt = time.Now()
		t.repo.journal = append(t.repo.journal, *txn)
		if txn.ReferenceID != nil &&
			(txn.Kind == domain.TransactionPayout || txn.Kind == domain.TransactionStakeRelease) {
			t.repo.settled[txn.ReferenceID.String()] = true
		}
	}
	return nil
}

func (t *fakeLedgerTx) Rollback(_ context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	t.release()
	return nil
}

// stubPrices serves fixed USD rates without touching the network
type stubPrices struct {
	rates map[string]decimal.Decimal
}

func newStubPrices() stubPrices {
	return stubPrices{rates: map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(45000),
		"ETH": decimal.NewFromInt(2500),
	}}
}

func (s stubPrices) GetRate(_ context.Context, currency string) (prices.Quote, error) {
	if currency == prices.USD {
		return prices.Quote{Currency: currency, USDRate: decimal.NewFromInt(1), AsOf: time.Now()}, nil
	}
	rate, ok := s.rates[currency]
	if !ok {
		return prices.Quote{}, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, currency)
	}
	return prices.Quote{Currency: currency, USDRate: rate, AsOf: time.Now()}, nil
}

func (s stubPrices) GetAllRates(ctx context.Context) (map[string]prices.Quote, error) {
	quotes := make(map[string]prices.Quote)
	for currency := range s.rates {
		q, _ := s.GetRate(ctx, currency)
		quotes[currency] = q
	}
	return quotes, nil
}

func (s stubPrices) IsSupported(currency string) bool {
	if currency == prices.USD {
		return true
	}
	_, ok := s.rates[currency]
	return ok
}

func (s stubPrices) SupportedCurrencies() []string {
	currencies := []string{prices.USD}
	for currency := range s.rates {
		currencies = append(currencies, currency)
	}
	return currencies
}
