package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ibcplay/ibcplay/internal/database/postgres"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Users  repository.Users
	Ledger repository.Ledger
	Rounds repository.Rounds
	Bets   repository.Bets
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:  postgres.NewUserRepository(dbPool),
		Ledger: postgres.NewLedgerRepository(dbPool),
		Rounds: postgres.NewRoundRepository(dbPool),
		Bets:   postgres.NewBetRepository(dbPool),
	}
}
