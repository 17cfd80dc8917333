package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/db"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
)

type itemRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewItem(pool *pgxpool.Pool) (port.ItemRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &itemRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewItemWithTx(tx pgx.Tx) port.ItemRepository {
	return &itemRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *itemRepository) CreateItem(ctx context.Context, params domain.ItemParams) (domain.Item, error) {
	if err := params.Validate(); err != nil {
		return domain.Item{}, err
	}

	dbItem, err := r.q.CreateItem(ctx, db.CreateItemParams{
		Name:         params.Name,
		Description:  params.Description,
		PriceInCents: params.PriceInCents,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("q.CreateItem: %w", err)
	}

	return mapItemToDomain(dbItem), nil
}

// UpdateItem edits an unsold item. Carts holding the item keep the price it had when added.
func (r *itemRepository) UpdateItem(ctx context.Context, itemID uuid.UUID, params domain.ItemParams) (domain.Item, error) {
	if err := params.Validate(); err != nil {
		return domain.Item{}, err
	}

	item, err := withTx(ctx, r.pool, r.q, pgx.TxOptions{}, func(q *db.Queries) (domain.Item, error) {
		if _, err := lockUnsoldItem(ctx, q, itemID); err != nil {
			return domain.Item{}, err
		}

		dbItem, err := q.UpdateItem(ctx, db.UpdateItemParams{
			Name:         params.Name,
			Description:  params.Description,
			PriceInCents: params.PriceInCents,
			ID:           itemID,
		})
		if err != nil {
			return domain.Item{}, fmt.Errorf("q.UpdateItem: %w", err)
		}

		return mapItemToDomain(dbItem), nil
	})
	if err != nil {
		return domain.Item{}, classifyTxErr("update item", err)
	}

	return item, nil
}

func (r *itemRepository) GetItem(ctx context.Context, itemID uuid.UUID) (domain.Item, error) {
	dbItem, err := r.q.GetItem(ctx, itemID)
	if err != nil {
		if isNoRows(err) {
			return domain.Item{}, fmt.Errorf("item[%s]: %w", itemID, domain.ErrNotFound)
		}
		return domain.Item{}, fmt.Errorf("q.GetItem: %w", err)
	}

	return mapItemToDomain(dbItem), nil
}

// DeleteItem deletes an unsold item, taking it out of every cart that holds it.
// Sold items belong to an order and cannot be deleted.
func (r *itemRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	_, err := withTx(ctx, r.pool, r.q, pgx.TxOptions{}, func(q *db.Queries) (struct{}, error) {
		// lock order matches AddItem and Checkout: carts, then the item
		if _, err := q.LockCartsHoldingItem(ctx, itemID); err != nil {
			return struct{}{}, fmt.Errorf("q.LockCartsHoldingItem: %w", err)
		}

		if _, err := lockUnsoldItem(ctx, q, itemID); err != nil {
			return struct{}{}, err
		}

		if _, err := q.DetachItemFromCarts(ctx, itemID); err != nil {
			return struct{}{}, fmt.Errorf("q.DetachItemFromCarts: %w", err)
		}

		if err := q.DeleteCartItemsByItem(ctx, itemID); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteCartItemsByItem: %w", err)
		}

		if _, err := q.DeleteItem(ctx, itemID); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteItem: %w", err)
		}

		return struct{}{}, nil
	})

	return classifyTxErr("delete item", err)
}

func (r *itemRepository) ListItems(ctx context.Context, filter domain.ItemFilter, limit, offset int) ([]domain.Item, error) {
	if limit <= 0 || limit > math.MaxInt32 {
		return nil, fmt.Errorf("limit[%d] is out of range", limit)
	}
	if offset < 0 || offset > math.MaxInt32 {
		return nil, fmt.Errorf("offset[%d] is out of range", offset)
	}

	dbItems, err := r.q.ListItems(ctx, db.ListItemsParams{
		Filter:      filter.Text,
		IncludeSold: filter.IncludeSold,
		PageLimit:   int32(limit),
		PageOffset:  int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("q.ListItems: %w", err)
	}

	return mapItemsToDomain(dbItems), nil
}

func (r *itemRepository) CountItems(ctx context.Context, filter domain.ItemFilter) (int, error) {
	count, err := r.q.CountItems(ctx, db.CountItemsParams{
		Filter:      filter.Text,
		IncludeSold: filter.IncludeSold,
	})
	if err != nil {
		return 0, fmt.Errorf("q.CountItems: %w", err)
	}

	return int(count), nil
}

func (r *itemRepository) ListFeaturedItems(ctx context.Context, limit int) ([]domain.Item, error) {
	if limit <= 0 || limit > math.MaxInt32 {
		return nil, fmt.Errorf("limit[%d] is out of range", limit)
	}

	dbItems, err := r.q.ListFeaturedItems(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("q.ListFeaturedItems: %w", err)
	}

	return mapItemsToDomain(dbItems), nil
}

func lockUnsoldItem(ctx context.Context, q *db.Queries, itemID uuid.UUID) (db.Item, error) {
	item, err := q.GetItemForUpdate(ctx, itemID)
	if err != nil {
		if isNoRows(err) {
			return db.Item{}, fmt.Errorf("item[%s]: %w", itemID, domain.ErrNotFound)
		}
		return db.Item{}, fmt.Errorf("q.GetItemForUpdate: %w", err)
	}

	if item.SoldAt != nil {
		return db.Item{}, fmt.Errorf("item[%s]: %w", itemID, domain.ErrItemSold)
	}

	return item, nil
}

func mapItemToDomain(item db.Item) domain.Item {
	return domain.Item{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		PriceInCents: item.PriceInCents,
		SoldAt:       item.SoldAt,
		CreatedAt:    item.CreatedAt,
	}
}

func mapItemsToDomain(dbItems []db.Item) []domain.Item {
	var items []domain.Item

	for _, item := range dbItems {
		items = append(items, mapItemToDomain(item))
	}

	return items
}
