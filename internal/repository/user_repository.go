package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/db"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) (port.UserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &userRepository{
		q: db.New(pool),
	}, nil
}

func (r *userRepository) CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error) {
	if username == "" {
		return domain.User{}, &domain.ValidationError{Field: "username", Message: "is required"}
	}
	if passwordHash == "" {
		return domain.User{}, fmt.Errorf("passwordHash is empty")
	}

	dbUser, err := r.q.CreateUser(ctx, db.CreateUserParams{
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return domain.User{}, fmt.Errorf("username[%s] is taken: %w", username, domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("q.CreateUser: %w", err)
	}

	return mapUserToDomain(dbUser), nil
}

func (r *userRepository) GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	dbUser, err := r.q.GetUser(ctx, userID)
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, fmt.Errorf("user[%s]: %w", userID, domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUser: %w", err)
	}

	return mapUserToDomain(dbUser), nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	if username == "" {
		return domain.User{}, fmt.Errorf("username is empty")
	}

	dbUser, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, fmt.Errorf("user[%s]: %w", username, domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUserByUsername: %w", err)
	}

	return mapUserToDomain(dbUser), nil
}

func mapUserToDomain(u db.User) domain.User {
	return domain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}
