package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// RoundRepository implements repository.Rounds backed by PostgreSQL
type RoundRepository struct {
	db *pgxpool.Pool
}

// NewRoundRepository creates a new PostgreSQL casino round repository
func NewRoundRepository(db *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) CreateRound(ctx context.Context, round *domain.CasinoRound) error {
	query := `
		INSERT INTO casino_rounds (id, owner_id, game, state, currency, stake_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		round.ID, round.OwnerID, round.Game, round.State, round.Currency, round.Stake).
		Scan(&round.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRound, err)
	}
	return nil
}

func (r *RoundRepository) GetRound(ctx context.Context, id uuid.UUID) (*domain.CasinoRound, error) {
	query := `
		SELECT id, owner_id, game, state, currency, stake_amount, outcome,
		       payout_amount, multiplier, trace_data, created_at, settled_at
		FROM casino_rounds
		WHERE id = $1
	`

	round, err := scanRound(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRoundNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRound, err)
	}
	return round, nil
}

// UpdateRoundStateIfMatches performs a compare-and-set state transition.
// Terminal states stamp settled_at as part of the same statement.
func (r *RoundRepository) UpdateRoundStateIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.RoundState) (int64, error) {
	query := `
		UPDATE casino_rounds
		SET state = $3,
		    settled_at = CASE WHEN $3 IN ('settled', 'voided') THEN NOW() ELSE settled_at END
		WHERE id = $1 AND state = $2
	`

	tag, err := r.db.Exec(ctx, query, id, expected, next)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRound, err)
	}
	return tag.RowsAffected(), nil
}

// SaveRoundOutcome records the engine result and advances funds_locked to
// outcome_computed in one statement so a crashed process never loses draws
// it already made.
func (r *RoundRepository) SaveRoundOutcome(ctx context.Context, id uuid.UUID, outcome domain.Outcome, multiplier float64, payout decimal.Decimal, trace json.RawMessage) (int64, error) {
	query := `
		UPDATE casino_rounds
		SET outcome = $2, multiplier = $3, payout_amount = $4, trace_data = $5, state = $6
		WHERE id = $1 AND state = $7
	`

	tag, err := r.db.Exec(ctx, query, id, outcome, multiplier, payout, trace,
		domain.RoundStateOutcomeComputed, domain.RoundStateFundsLocked)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSaveOutcome, err)
	}
	return tag.RowsAffected(), nil
}

// ListRounds retrieves round history based on filter criteria
func (r *RoundRepository) ListRounds(ctx context.Context, filter repository.RoundFilter) ([]domain.CasinoRound, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, owner_id, game, state, currency, stake_amount, outcome,
		       payout_amount, multiplier, trace_data, created_at, settled_at
		FROM casino_rounds
		WHERE owner_id = $1`)

	args := []interface{}{filter.OwnerID}
	argNum := 2

	if filter.Game != nil {
		fmt.Fprintf(&queryBuilder, " AND game = $%d", argNum)
		args = append(args, *filter.Game)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

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
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRounds, err)
	}
	defer rows.Close()

	return collectRounds(rows)
}

// ListUnsettledRounds returns rounds stranded mid-settlement, oldest first
func (r *RoundRepository) ListUnsettledRounds(ctx context.Context, olderThan time.Time, limit int) ([]domain.CasinoRound, error) {
	query := `
		SELECT id, owner_id, game, state, currency, stake_amount, outcome,
		       payout_amount, multiplier, trace_data, created_at, settled_at
		FROM casino_rounds
		WHERE state IN ($1, $2) AND created_at < $3
		ORDER BY created_at
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query,
		domain.RoundStateFundsLocked, domain.RoundStateOutcomeComputed, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRounds, err)
	}
	defer rows.Close()

	return collectRounds(rows)
}

// GetStats aggregates a player's settled rounds
func (r *RoundRepository) GetStats(ctx context.Context, ownerID uuid.UUID) (*domain.CasinoStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(stake_amount), 0),
		       COALESCE(SUM(payout_amount), 0),
		       COUNT(*) FILTER (WHERE outcome = 'win'),
		       COALESCE(MAX(payout_amount), 0)
		FROM casino_rounds
		WHERE owner_id = $1 AND state = $2
	`

	var stats domain.CasinoStats
	var wins int
	err := r.db.QueryRow(ctx, query, ownerID, domain.RoundStateSettled).
		Scan(&stats.TotalRounds, &stats.TotalWagered, &stats.TotalWon, &wins, &stats.BiggestWin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRoundStats, err)
	}

	stats.NetProfit = stats.TotalWon.Sub(stats.TotalWagered)
	if stats.TotalRounds > 0 {
		stats.WinRate = float64(wins) / float64(stats.TotalRounds)
	}

	favoriteQuery := `
		SELECT game
		FROM casino_rounds
		WHERE owner_id = $1 AND state = $2
		GROUP BY game
		ORDER BY COUNT(*) DESC, game
		LIMIT 1
	`

	err = r.db.QueryRow(ctx, favoriteQuery, ownerID, domain.RoundStateSettled).Scan(&stats.FavoriteGame)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRoundStats, err)
	}

	return &stats, nil
}

func scanRound(row pgx.Row) (*domain.CasinoRound, error) {
	var round domain.CasinoRound
	var outcome *string
	var trace []byte
	err := row.Scan(&round.ID, &round.OwnerID, &round.Game, &round.State, &round.Currency,
		&round.Stake, &outcome, &round.Payout, &round.Multiplier, &trace,
		&round.CreatedAt, &round.SettledAt)
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		round.Outcome = domain.Outcome(*outcome)
	}
	round.TraceData = trace
	return &round, nil
}

func collectRounds(rows pgx.Rows) ([]domain.CasinoRound, error) {
	var rounds []domain.CasinoRound
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRounds, err)
		}
		rounds = append(rounds, *round)
	}
	return rounds, rows.Err()
}
