package port

import (
	"context"

	"github.com/nikolayk812/garage-sale/internal/domain"
)

type Catalog interface {
	List(ctx context.Context, query domain.CatalogQuery) (domain.Page[domain.CatalogRow], error)
	Featured(ctx context.Context) ([]domain.CatalogRow, error)
}
