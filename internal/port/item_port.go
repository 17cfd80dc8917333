package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/garage-sale/internal/domain"
)

type ItemRepository interface {
	CreateItem(ctx context.Context, params domain.ItemParams) (domain.Item, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, params domain.ItemParams) (domain.Item, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (domain.Item, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ListItems(ctx context.Context, filter domain.ItemFilter, limit, offset int) ([]domain.Item, error)
	CountItems(ctx context.Context, filter domain.ItemFilter) (int, error)
	ListFeaturedItems(ctx context.Context, limit int) ([]domain.Item, error)
}
