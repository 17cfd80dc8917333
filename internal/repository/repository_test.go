package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_shop.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func truncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE orders, cart_items, carts, items, users CASCADE")
	return err
}

func markSold(t *testing.T, pool *pgxpool.Pool, itemID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(t.Context(), "UPDATE items SET sold_at = now() WHERE id = $1", itemID)
	require.NoError(t, err)
}

func createUser(t *testing.T, repo port.UserRepository) domain.User {
	t.Helper()

	user, err := repo.CreateUser(t.Context(), gofakeit.UUID(), "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA")
	require.NoError(t, err)

	return user
}

func createItem(t *testing.T, repo port.ItemRepository, priceInCents int64) domain.Item {
	t.Helper()

	item, err := repo.CreateItem(t.Context(), domain.ItemParams{
		Name:         gofakeit.ProductName(),
		Description:  gofakeit.Phrase(),
		PriceInCents: priceInCents,
	})
	require.NoError(t, err)

	return item
}

func randomItemParams() domain.ItemParams {
	return domain.ItemParams{
		Name:         gofakeit.ProductName(),
		Description:  gofakeit.Phrase(),
		PriceInCents: int64(gofakeit.IntRange(0, 1_000_000)),
	}
}

func sumOrderPrices(order domain.Order) int64 {
	var sum int64
	for _, ci := range order.Items {
		sum += ci.PriceInCents
	}
	return sum
}

func sumCartPrices(cart domain.Cart) int64 {
	var sum int64
	for _, ci := range cart.Items {
		sum += ci.PriceInCents
	}
	return sum
}
