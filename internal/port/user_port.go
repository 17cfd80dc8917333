package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/garage-sale/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
}
