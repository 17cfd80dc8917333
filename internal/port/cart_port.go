package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/garage-sale/internal/domain"
)

type CartRepository interface {
	GetOrCreateActive(ctx context.Context, userID uuid.UUID) (domain.Cart, error)
	GetCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error)
	AddItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)
	Checkout(ctx context.Context, cartID uuid.UUID, contact domain.Contact) (domain.Order, error)
}
