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

// BetRepository implements repository.Bets backed by PostgreSQL
type BetRepository struct {
	db *pgxpool.Pool
}

// NewBetRepository creates a new PostgreSQL bet repository
func NewBetRepository(db *pgxpool.Pool) *BetRepository {
	return &BetRepository{db: db}
}

func (r *BetRepository) CreateBet(ctx context.Context, bet *domain.Bet) error {
	query := `
		INSERT INTO bets (id, owner_id, bet_type, sport, event_name, selection,
		                  odds, stake_amount, currency, potential_payout, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING placed_at
	`

	err := r.db.QueryRow(ctx, query,
		bet.ID, bet.OwnerID, bet.BetType, nullable(bet.Sport), bet.EventName, bet.Selection,
		bet.Odds, bet.Stake, bet.Currency, bet.PotentialPayout, bet.Status).
		Scan(&bet.PlacedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertBet, err)
	}
	return nil
}

func (r *BetRepository) GetBet(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	query := `
		SELECT id, owner_id, bet_type, sport, event_name, selection, odds,
		       stake_amount, currency, potential_payout, status, settled_amount,
		       placed_at, settled_at
		FROM bets
		WHERE id = $1
	`

	bet, err := scanBet(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBetNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBet, err)
	}
	return bet, nil
}

// SettleBetIfPending moves a pending bet to a terminal status; a zero row
// count means another resolver got there first
func (r *BetRepository) SettleBetIfPending(ctx context.Context, id uuid.UUID, status domain.BetStatus, settledAmount decimal.Decimal) (int64, error) {
	query := `
		UPDATE bets
		SET status = $2, settled_amount = $3, settled_at = NOW()
		WHERE id = $1 AND status = $4
	`

	tag, err := r.db.Exec(ctx, query, id, status, settledAmount, domain.BetStatusPending)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSettleBet, err)
	}
	return tag.RowsAffected(), nil
}

// ListBets retrieves bet history based on filter criteria
func (r *BetRepository) ListBets(ctx context.Context, filter repository.BetFilter) ([]domain.Bet, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, owner_id, bet_type, sport, event_name, selection, odds,
		       stake_amount, currency, potential_payout, status, settled_amount,
		       placed_at, settled_at
		FROM bets
		WHERE owner_id = $1`)

	args := []interface{}{filter.OwnerID}
	argNum := 2

	if filter.Status != nil {
		fmt.Fprintf(&queryBuilder, " AND status = $%d", argNum)
		args = append(args, *filter.Status)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY placed_at DESC")

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
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBets, err)
	}
	defer rows.Close()

	var bets []domain.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBets, err)
		}
		bets = append(bets, *bet)
	}
	return bets, rows.Err()
}

func scanBet(row pgx.Row) (*domain.Bet, error) {
	var bet domain.Bet
	var sport *string
	err := row.Scan(&bet.ID, &bet.OwnerID, &bet.BetType, &sport, &bet.EventName,
		&bet.Selection, &bet.Odds, &bet.Stake, &bet.Currency, &bet.PotentialPayout,
		&bet.Status, &bet.SettledAmount, &bet.PlacedAt, &bet.SettledAt)
	if err != nil {
		return nil, err
	}
	if sport != nil {
		bet.Sport = *sport
	}
	return &bet, nil
}

// nullable maps an empty string to NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
