package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// LedgerRepository implements repository.Ledger backed by PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetWallet fetches one wallet without locking it
func (r *LedgerRepository) GetWallet(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error) {
	query := `
		SELECT owner_id, currency, available, locked, updated_at
		FROM wallets
		WHERE owner_id = $1 AND currency = $2
	`

	var w domain.Wallet
	err := r.db.QueryRow(ctx, query, ownerID, currency).
		Scan(&w.OwnerID, &w.Currency, &w.Available, &w.Locked, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrWalletNotFound, ownerID, currency)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWallet, err)
	}
	return &w, nil
}

// ListWallets returns every wallet the owner holds, ordered by currency
func (r *LedgerRepository) ListWallets(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	query := `
		SELECT owner_id, currency, available, locked, updated_at
		FROM wallets
		WHERE owner_id = $1
		ORDER BY currency
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWallets, err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.OwnerID, &w.Currency, &w.Available, &w.Locked, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWallets, err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// ListTransactions retrieves journal entries based on filter criteria
func (r *LedgerRepository) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, owner_id, kind, currency, amount, usd_value, status, description, reference_id, created_at
		FROM transactions
		WHERE owner_id = $1`)

	args := []interface{}{filter.OwnerID}
	argNum := 2

	if filter.Kind != nil {
		fmt.Fprintf(&queryBuilder, " AND kind = $%d", argNum)
		args = append(args, *filter.Kind)
		argNum++
	}

	if filter.Currency != nil {
		fmt.Fprintf(&queryBuilder, " AND currency = $%d", argNum)
		args = append(args, *filter.Currency)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}

	if filter.Offset > 0 {
		fmt.Fprintf(&queryBuilder, " OFFSET $%d", argNum)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListJournal, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var description *string
		err := rows.Scan(&t.ID, &t.OwnerID, &t.Kind, &t.Currency, &t.Amount,
			&t.USDValue, &t.Status, &description, &t.ReferenceID, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListJournal, err)
		}
		if description != nil {
			t.Description = *description
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// BeginLedgerTx starts a transaction for a single atomic balance mutation
func (r *LedgerRepository) BeginLedgerTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginLedgerTransaction, err)
	}
	return &ledgerTx{tx: tx}, nil
}

// ledgerTx implements repository.LedgerTx
type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err))
	}
	return nil
}

func (t *ledgerTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return errors.New(domain.ErrMsgTxClosed)
	}
	return err
}

// GetWalletForUpdate locks the wallet row for the rest of the transaction,
// serializing concurrent mutations of the same wallet
func (t *ledgerTx) GetWalletForUpdate(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error) {
	query := `
		SELECT owner_id, currency, available, locked, updated_at
		FROM wallets
		WHERE owner_id = $1 AND currency = $2
		FOR UPDATE
	`

	var w domain.Wallet
	err := t.tx.QueryRow(ctx, query, ownerID, currency).
		Scan(&w.OwnerID, &w.Currency, &w.Available, &w.Locked, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrWalletNotFound, ownerID, currency)
		}
		return nil, mapConcurrencyError(fmt.Errorf("%s: %w", ErrMsgFailedToGetWallet, err))
	}
	return &w, nil
}

func (t *ledgerTx) CreateWallet(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (owner_id, currency, available, locked)
		VALUES ($1, $2, $3, $4)
		RETURNING updated_at
	`

	err := t.tx.QueryRow(ctx, query, wallet.OwnerID, wallet.Currency, wallet.Available, wallet.Locked).
		Scan(&wallet.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Another transaction created the wallet first; retry will see it
			return fmt.Errorf("%w: wallet %s %s", domain.ErrConflict, wallet.OwnerID, wallet.Currency)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertWallet, err)
	}
	return nil
}

func (t *ledgerTx) UpdateWalletBalances(ctx context.Context, ownerID uuid.UUID, currency string, available, locked decimal.Decimal) error {
	query := `
		UPDATE wallets
		SET available = $3, locked = $4, updated_at = NOW()
		WHERE owner_id = $1 AND currency = $2
	`

	tag, err := t.tx.Exec(ctx, query, ownerID, currency, available, locked)
	if err != nil {
		return mapConcurrencyError(fmt.Errorf("%s: %w", ErrMsgFailedToUpdateWallet, err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", domain.ErrWalletNotFound, ownerID, currency)
	}
	return nil
}

func (t *ledgerTx) AppendTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (owner_id, kind, currency, amount, usd_value, status, description, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := t.tx.QueryRow(ctx, query,
		txn.OwnerID, txn.Kind, txn.Currency, txn.Amount, txn.USDValue,
		txn.Status, txn.Description, txn.ReferenceID).
		Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// The settlement uniqueness index already holds an entry for
			// this reference; the round or bet was paid out before
			return fmt.Errorf("%w: %s %s", domain.ErrAlreadySettled, txn.Kind, refString(txn.ReferenceID))
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertJournal, err)
	}
	return nil
}

func refString(id *uuid.UUID) string {
	if id == nil {
		return "<none>"
	}
	return id.String()
}
