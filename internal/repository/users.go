package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// Users defines the interface for account persistence
type Users interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
