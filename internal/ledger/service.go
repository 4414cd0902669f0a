package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/metrics"
	"github.com/ibcplay/ibcplay/internal/prices"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// Service defines the interface for ledger operations. Every mutation is a
// single database transaction that locks the wallet row, applies the balance
// move and appends a journal entry; concurrent mutations of the same wallet
// serialize on the row lock and conflicts are retried with backoff.
type Service interface {
	Deposit(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error)
	Convert(ctx context.Context, ownerID uuid.UUID, fromCurrency, toCurrency string, amount decimal.Decimal) (*domain.Conversion, error)

	// LockStake reserves amount against the reference; ReleaseStake returns
	// it untouched. Settle consumes the locked stake and credits payout,
	// journaling at most one settlement entry per reference ever.
	LockStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID, description string) error
	ReleaseStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID) error
	Settle(ctx context.Context, ownerID uuid.UUID, currency string, stake, payout decimal.Decimal, referenceID uuid.UUID, description string) error

	Wallets(ctx context.Context, ownerID uuid.UUID) ([]domain.WalletBalance, error)
	Transactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error)
}

type service struct {
	repo   repository.Ledger
	prices prices.Service
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger, priceService prices.Service) Service {
	return &service{repo: repo, prices: priceService}
}

// Deposit credits available funds
func (s *service) Deposit(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error) {
	if err := s.validateAmount(currency, amount); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		OwnerID:     ownerID,
		Kind:        domain.TransactionDeposit,
		Currency:    currency,
		Amount:      amount,
		USDValue:    s.usdValue(ctx, currency, amount),
		Status:      domain.TransactionStatusCompleted,
		Description: DescDeposit,
	}

	err := s.mutate(ctx, domain.TransactionDeposit, func(tx repository.LedgerTx) error {
		wallet, err := s.walletForUpdate(ctx, tx, ownerID, currency, true)
		if err != nil {
			return err
		}
		if err := tx.UpdateWalletBalances(ctx, ownerID, currency, wallet.Available.Add(amount), wallet.Locked); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Deposit completed",
		"owner_id", ownerID, "currency", currency, "amount", amount)
	return txn, nil
}

// Withdraw debits available funds
func (s *service) Withdraw(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error) {
	if err := s.validateAmount(currency, amount); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		OwnerID:     ownerID,
		Kind:        domain.TransactionWithdraw,
		Currency:    currency,
		Amount:      amount.Neg(),
		USDValue:    s.usdValue(ctx, currency, amount.Neg()),
		Status:      domain.TransactionStatusCompleted,
		Description: DescWithdraw,
	}

	err := s.mutate(ctx, domain.TransactionWithdraw, func(tx repository.LedgerTx) error {
		wallet, err := s.walletForUpdate(ctx, tx, ownerID, currency, false)
		if err != nil {
			return err
		}
		if wallet.Available.LessThan(amount) {
			return fmt.Errorf("%w: available %s, requested %s",
				domain.ErrInsufficientFunds, wallet.Available, amount)
		}
		if err := tx.UpdateWalletBalances(ctx, ownerID, currency, wallet.Available.Sub(amount), wallet.Locked); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Withdrawal completed",
		"owner_id", ownerID, "currency", currency, "amount", amount)
	return txn, nil
}

// Convert exchanges between two currencies at the current rate pair. Both
// journal legs share one reference ID so the exchange can be audited as a
// unit.
func (s *service) Convert(ctx context.Context, ownerID uuid.UUID, fromCurrency, toCurrency string, amount decimal.Decimal) (*domain.Conversion, error) {
	if fromCurrency == toCurrency {
		return nil, fmt.Errorf("%w: cannot convert %s to itself", domain.ErrInvalidAmount, fromCurrency)
	}
	if err := s.validateAmount(fromCurrency, amount); err != nil {
		return nil, err
	}
	if !s.prices.IsSupported(toCurrency) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, toCurrency)
	}

	fromQuote, err := s.prices.GetRate(ctx, fromCurrency)
	if err != nil {
		return nil, err
	}
	toQuote, err := s.prices.GetRate(ctx, toCurrency)
	if err != nil {
		return nil, err
	}

	rate := fromQuote.USDRate.Div(toQuote.USDRate)
	toAmount := amount.Mul(rate).Round(ConversionScale)
	if toAmount.IsZero() {
		return nil, fmt.Errorf("%w: %s %s converts to zero %s",
			domain.ErrInvalidAmount, amount, fromCurrency, toCurrency)
	}

	referenceID := uuid.New()
	usdValue := amount.Mul(fromQuote.USDRate).Round(USDScale)

	err = s.mutate(ctx, domain.TransactionConvertOut, func(tx repository.LedgerTx) error {
		// Lock wallets in currency order so two opposing converts cannot
		// deadlock each other
		first, second := fromCurrency, toCurrency
		if first > second {
			first, second = second, first
		}

		wallets := make(map[string]*domain.Wallet, 2)
		for _, currency := range []string{first, second} {
			wallet, err := s.walletForUpdate(ctx, tx, ownerID, currency, currency == toCurrency)
			if err != nil {
				return err
			}
			wallets[currency] = wallet
		}

		from, to := wallets[fromCurrency], wallets[toCurrency]
		if from.Available.LessThan(amount) {
			return fmt.Errorf("%w: available %s, requested %s",
				domain.ErrInsufficientFunds, from.Available, amount)
		}

		if err := tx.UpdateWalletBalances(ctx, ownerID, fromCurrency, from.Available.Sub(amount), from.Locked); err != nil {
			return err
		}
		if err := tx.UpdateWalletBalances(ctx, ownerID, toCurrency, to.Available.Add(toAmount), to.Locked); err != nil {
			return err
		}

		out := &domain.Transaction{
			OwnerID:     ownerID,
			Kind:        domain.TransactionConvertOut,
			Currency:    fromCurrency,
			Amount:      amount.Neg(),
			USDValue:    &usdValue,
			Status:      domain.TransactionStatusCompleted,
			Description: fmt.Sprintf("convert to %s", toCurrency),
			ReferenceID: &referenceID,
		}
		if err := tx.AppendTransaction(ctx, out); err != nil {
			return err
		}

		in := &domain.Transaction{
			OwnerID:     ownerID,
			Kind:        domain.TransactionConvertIn,
			Currency:    toCurrency,
			Amount:      toAmount,
			USDValue:    &usdValue,
			Status:      domain.TransactionStatusCompleted,
			Description: fmt.Sprintf("convert from %s", fromCurrency),
			ReferenceID: &referenceID,
		}
		return tx.AppendTransaction(ctx, in)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Conversion completed",
		"owner_id", ownerID, "from", fromCurrency, "to", toCurrency,
		"amount", amount, "converted", toAmount)

	return &domain.Conversion{
		ReferenceID:  referenceID,
		FromCurrency: fromCurrency,
		FromAmount:   amount,
		ToCurrency:   toCurrency,
		ToAmount:     toAmount,
		ExchangeRate: rate,
	}, nil
}

// LockStake moves amount from available to locked under the reference
func (s *service) LockStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID, description string) error {
	if err := s.validateAmount(currency, amount); err != nil {
		return err
	}

	err := s.mutate(ctx, domain.TransactionStakeLock, func(tx repository.LedgerTx) error {
		wallet, err := s.walletForUpdate(ctx, tx, ownerID, currency, false)
		if err != nil {
			return err
		}
		if wallet.Available.LessThan(amount) {
			return fmt.Errorf("%w: available %s, stake %s",
				domain.ErrInsufficientFunds, wallet.Available, amount)
		}
		if err := tx.UpdateWalletBalances(ctx, ownerID, currency,
			wallet.Available.Sub(amount), wallet.Locked.Add(amount)); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, &domain.Transaction{
			OwnerID:     ownerID,
			Kind:        domain.TransactionStakeLock,
			Currency:    currency,
			Amount:      amount.Neg(),
			USDValue:    s.usdValue(ctx, currency, amount.Neg()),
			Status:      domain.TransactionStatusCompleted,
			Description: description,
			ReferenceID: &referenceID,
		})
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Stake locked",
		"owner_id", ownerID, "currency", currency, "amount", amount, "reference_id", referenceID)
	return nil
}

// ReleaseStake returns a locked stake to available untouched. The journal
// uniqueness constraint guarantees a reference is released at most once.
func (s *service) ReleaseStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID) error {
	if err := s.validateAmount(currency, amount); err != nil {
		return err
	}

	err := s.mutate(ctx, domain.TransactionStakeRelease, func(tx repository.LedgerTx) error {
		wallet, err := s.walletForUpdate(ctx, tx, ownerID, currency, false)
		if err != nil {
			return err
		}
		// Journal first so a reference that was already settled or released
		// fails on the uniqueness guard with ErrAlreadySettled, not on the
		// drained locked balance
		if err := tx.AppendTransaction(ctx, &domain.Transaction{
			OwnerID:     ownerID,
			Kind:        domain.TransactionStakeRelease,
			Currency:    currency,
			Amount:      amount,
			Status:      domain.TransactionStatusCompleted,
			Description: "stake released",
			ReferenceID: &referenceID,
		}); err != nil {
			return err
		}
		if wallet.Locked.LessThan(amount) {
			return fmt.Errorf("%w: locked %s, release %s",
				domain.ErrInsufficientFunds, wallet.Locked, amount)
		}
		return tx.UpdateWalletBalances(ctx, ownerID, currency,
			wallet.Available.Add(amount), wallet.Locked.Sub(amount))
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Stake released",
		"owner_id", ownerID, "currency", currency, "amount", amount, "reference_id", referenceID)
	return nil
}

// Settle consumes the locked stake and credits the payout in one atomic
// move. A zero payout still journals an entry so a second settlement of the
// same reference fails with ErrAlreadySettled instead of paying twice.
func (s *service) Settle(ctx context.Context, ownerID uuid.UUID, currency string, stake, payout decimal.Decimal, referenceID uuid.UUID, description string) error {
	if stake.IsNegative() || payout.IsNegative() {
		return fmt.Errorf("%w: stake %s, payout %s", domain.ErrInvalidAmount, stake, payout)
	}

	err := s.mutate(ctx, domain.TransactionPayout, func(tx repository.LedgerTx) error {
		wallet, err := s.walletForUpdate(ctx, tx, ownerID, currency, false)
		if err != nil {
			return err
		}
		// Journal first so a duplicate settlement hits the per-reference
		// uniqueness guard and surfaces ErrAlreadySettled. Checking the
		// locked balance first would misreport the retry of an already
		// settled reference as insufficient funds
		if err := tx.AppendTransaction(ctx, &domain.Transaction{
			OwnerID:     ownerID,
			Kind:        domain.TransactionPayout,
			Currency:    currency,
			Amount:      payout,
			USDValue:    s.usdValue(ctx, currency, payout),
			Status:      domain.TransactionStatusCompleted,
			Description: description,
			ReferenceID: &referenceID,
		}); err != nil {
			return err
		}
		if wallet.Locked.LessThan(stake) {
			return fmt.Errorf("%w: locked %s, stake %s",
				domain.ErrInsufficientFunds, wallet.Locked, stake)
		}
		return tx.UpdateWalletBalances(ctx, ownerID, currency,
			wallet.Available.Add(payout), wallet.Locked.Sub(stake))
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Settlement completed",
		"owner_id", ownerID, "currency", currency, "stake", stake,
		"payout", payout, "reference_id", referenceID)
	return nil
}

// Wallets returns the owner's balances annotated with USD valuations
func (s *service) Wallets(ctx context.Context, ownerID uuid.UUID) ([]domain.WalletBalance, error) {
	wallets, err := s.repo.ListWallets(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	balances := make([]domain.WalletBalance, 0, len(wallets))
	for _, w := range wallets {
		balance := domain.WalletBalance{
			Currency:  w.Currency,
			Available: w.Available,
			Locked:    w.Locked,
		}
		if quote, err := s.prices.GetRate(ctx, w.Currency); err == nil {
			balance.USDValue = w.Total().Mul(quote.USDRate).Round(USDScale)
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

// Transactions returns journal history for an owner
func (s *service) Transactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// mutate runs fn in a ledger transaction, retrying conflicts with backoff
func (s *service) mutate(ctx context.Context, kind domain.TransactionKind, fn func(tx repository.LedgerTx) error) error {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.LedgerConflicts.Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(RetryBaseDelay << (attempt - 1)):
			}
		}

		err := s.mutateOnce(ctx, fn)
		if err == nil {
			metrics.LedgerOperations.WithLabelValues(string(kind), ResultSuccess).Inc()
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			metrics.LedgerOperations.WithLabelValues(string(kind), ResultFailure).Inc()
			return err
		}
		lastErr = err
	}

	metrics.LedgerOperations.WithLabelValues(string(kind), ResultFailure).Inc()
	return lastErr
}

func (s *service) mutateOnce(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
	tx, err := s.repo.BeginLedgerTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// walletForUpdate locks the wallet row, optionally creating a zero-balance
// wallet for credit operations when none exists yet
func (s *service) walletForUpdate(ctx context.Context, tx repository.LedgerTx, ownerID uuid.UUID, currency string, createMissing bool) (*domain.Wallet, error) {
	wallet, err := tx.GetWalletForUpdate(ctx, ownerID, currency)
	if err == nil {
		return wallet, nil
	}
	if !createMissing || !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}

	wallet = &domain.Wallet{
		OwnerID:   ownerID,
		Currency:  currency,
		Available: decimal.Zero,
		Locked:    decimal.Zero,
	}
	if err := tx.CreateWallet(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *service) validateAmount(currency string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount)
	}
	if !s.prices.IsSupported(currency) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, currency)
	}
	return nil
}

// usdValue is best effort; a missing rate leaves the valuation null rather
// than failing the mutation
func (s *service) usdValue(ctx context.Context, currency string, amount decimal.Decimal) *decimal.Decimal {
	quote, err := s.prices.GetRate(ctx, currency)
	if err != nil {
		return nil
	}
	v := amount.Mul(quote.USDRate).Round(USDScale)
	return &v
}
