package repositories

import (
	"context"

	"github.com/google/uuid"

	"memeforge.backend/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByWalletAddress(ctx context.Context, walletAddress string) (*entities.User, error)
}
