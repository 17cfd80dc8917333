package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/db"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
)

type orderRepository struct {
	q *db.Queries
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q: db.New(pool),
	}, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, orderID)
	if err != nil {
		if isNoRows(err) {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	items, err := r.q.ListCartItems(ctx, row.CartID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.ListCartItems: %w", err)
	}

	return mapOrderToDomain(orderHeader(row), items), nil
}

func (r *orderRepository) ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("userID is empty")
	}

	rows, err := r.q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersByUser: %w", err)
	}

	var orders []domain.Order

	for _, row := range rows {
		items, err := r.q.ListCartItems(ctx, row.CartID)
		if err != nil {
			return nil, fmt.Errorf("q.ListCartItems: %w", err)
		}

		orders = append(orders, mapOrderToDomain(orderHeader(row), items))
	}

	return orders, nil
}

// orderHeader mirrors the order rows joined with their cart.
type orderHeader struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	CartID       uuid.UUID
	CreatedAt    time.Time
	UserID       uuid.UUID
	TotalInCents int64
}

func mapOrderToDomain(h orderHeader, rows []db.ListCartItemsRow) domain.Order {
	return domain.Order{
		ID: h.ID,
		Contact: domain.Contact{
			FirstName: h.FirstName,
			LastName:  h.LastName,
			Email:     h.Email,
		},
		CartID:       h.CartID,
		UserID:       h.UserID,
		Items:        mapCartItemRowsToDomain(rows),
		TotalInCents: h.TotalInCents,
		CreatedAt:    h.CreatedAt,
	}
}
