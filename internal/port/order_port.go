package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/garage-sale/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}
