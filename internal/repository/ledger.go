package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// Ledger defines the interface for data access required by the ledger service.
// Every balance mutation happens inside a LedgerTx so the wallet row lock,
// balance update and journal append commit or roll back together.
type Ledger interface {
	GetWallet(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	BeginLedgerTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx extends Tx with the operations a single ledger mutation needs.
// GetWalletForUpdate takes a row lock, serializing concurrent mutations of
// the same wallet.
type LedgerTx interface {
	Tx // Commit, Rollback

	GetWalletForUpdate(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error)
	CreateWallet(ctx context.Context, wallet *domain.Wallet) error
	UpdateWalletBalances(ctx context.Context, ownerID uuid.UUID, currency string, available, locked decimal.Decimal) error
	AppendTransaction(ctx context.Context, txn *domain.Transaction) error
}

// TransactionFilter narrows journal queries
type TransactionFilter struct {
	OwnerID  uuid.UUID
	Kind     *domain.TransactionKind
	Currency *string
	Limit    int
	Offset   int
}
