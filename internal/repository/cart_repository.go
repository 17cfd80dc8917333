package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/db"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
		now:  time.Now,
	}, nil
}

// NewCartWithTx runs every operation inside the caller's transaction, including its isolation level.
func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
		now:  time.Now,
	}
}

func (r *cartRepository) GetOrCreateActive(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	if userID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("userID is empty")
	}

	return withTx(ctx, r.pool, r.q, pgx.TxOptions{}, func(q *db.Queries) (domain.Cart, error) {
		// partial unique index on (user_id) WHERE active turns a concurrent insert into a no-op
		if err := q.EnsureActiveCart(ctx, userID); err != nil {
			if pgErrorCode(err) == codeForeignKeyViolation {
				return domain.Cart{}, fmt.Errorf("user[%s]: %w", userID, domain.ErrNotFound)
			}
			return domain.Cart{}, fmt.Errorf("q.EnsureActiveCart: %w", err)
		}

		dbCart, err := q.GetActiveCart(ctx, userID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.GetActiveCart: %w", err)
		}

		return loadCart(ctx, q, dbCart)
	})
}

func (r *cartRepository) GetCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}

	dbCart, err := r.q.GetCart(ctx, cartID)
	if err != nil {
		if isNoRows(err) {
			return domain.Cart{}, fmt.Errorf("cart[%s]: %w", cartID, domain.ErrNotFound)
		}
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	return loadCart(ctx, r.q, dbCart)
}

// AddItem reports false when the item is already sold. Adding an item that is already
// in the cart succeeds without changing the total.
func (r *cartRepository) AddItem(ctx context.Context, cartID, itemID uuid.UUID) (_ bool, err error) {
	ctx, span := tracer.Start(ctx, "cartRepository.AddItem", trace.WithAttributes(
		attribute.String("cart.id", cartID.String()),
		attribute.String("item.id", itemID.String()),
	))
	defer func() { endSpan(span, err) }()

	added, err := withTx(ctx, r.pool, r.q, pgx.TxOptions{}, func(q *db.Queries) (bool, error) {
		if _, err := lockActiveCart(ctx, q, cartID); err != nil {
			return false, err
		}

		item, err := q.GetItemForUpdate(ctx, itemID)
		if err != nil {
			if isNoRows(err) {
				return false, fmt.Errorf("item[%s]: %w", itemID, domain.ErrNotFound)
			}
			return false, fmt.Errorf("q.GetItemForUpdate: %w", err)
		}

		if item.SoldAt != nil {
			return false, nil
		}

		inserted, err := q.AddCartItem(ctx, db.AddCartItemParams{
			CartID:       cartID,
			ItemID:       itemID,
			PriceInCents: item.PriceInCents,
		})
		if err != nil {
			return false, fmt.Errorf("q.AddCartItem: %w", err)
		}

		if inserted == 0 {
			return true, nil
		}

		err = q.AdjustCartTotal(ctx, db.AdjustCartTotalParams{
			Delta: item.PriceInCents,
			ID:    cartID,
		})
		if err != nil {
			return false, fmt.Errorf("q.AdjustCartTotal: %w", err)
		}

		return true, nil
	})
	if err != nil {
		return false, classifyTxErr("add item", err)
	}

	return added, nil
}

// RemoveItem reports false when the item is not in the cart; the total is left unchanged.
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (_ bool, err error) {
	ctx, span := tracer.Start(ctx, "cartRepository.RemoveItem", trace.WithAttributes(
		attribute.String("cart.id", cartID.String()),
		attribute.String("item.id", itemID.String()),
	))
	defer func() { endSpan(span, err) }()

	removed, err := withTx(ctx, r.pool, r.q, pgx.TxOptions{}, func(q *db.Queries) (bool, error) {
		if _, err := lockActiveCart(ctx, q, cartID); err != nil {
			return false, err
		}

		price, err := q.DeleteCartItem(ctx, db.DeleteCartItemParams{
			CartID: cartID,
			ItemID: itemID,
		})
		if err != nil {
			if isNoRows(err) {
				return false, nil
			}
			return false, fmt.Errorf("q.DeleteCartItem: %w", err)
		}

		err = q.AdjustCartTotal(ctx, db.AdjustCartTotalParams{
			Delta: -price,
			ID:    cartID,
		})
		if err != nil {
			return false, fmt.Errorf("q.AdjustCartTotal: %w", err)
		}

		return true, nil
	})
	if err != nil {
		return false, classifyTxErr("remove item", err)
	}

	return removed, nil
}

// Checkout finalizes an active cart into an order in a single serializable transaction:
// the order is created, the cart is deactivated, every cart item is stamped sold with the
// order timestamp and a fresh active cart is opened for the same user.
// An item sold through another cart in the meantime aborts the checkout with domain.ErrItemSold.
func (r *cartRepository) Checkout(ctx context.Context, cartID uuid.UUID, contact domain.Contact) (_ domain.Order, err error) {
	if cartID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("cartID is empty")
	}
	if err := contact.Validate(); err != nil {
		return domain.Order{}, err
	}

	ctx, span := tracer.Start(ctx, "cartRepository.Checkout", trace.WithAttributes(
		attribute.String("cart.id", cartID.String()),
	))
	defer func() { endSpan(span, err) }()

	order, err := withTx(ctx, r.pool, r.q, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(q *db.Queries) (domain.Order, error) {
		cart, err := lockActiveCart(ctx, q, cartID)
		if err != nil {
			return domain.Order{}, err
		}

		locked, err := q.LockCartItems(ctx, cartID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.LockCartItems: %w", err)
		}

		for _, item := range locked {
			if item.SoldAt != nil {
				return domain.Order{}, fmt.Errorf("item[%s]: %w", item.ID, domain.ErrItemSold)
			}
		}

		// timestamptz keeps microseconds
		checkedOutAt := r.now().UTC().Truncate(time.Microsecond)

		dbOrder, err := q.CreateOrder(ctx, db.CreateOrderParams{
			FirstName: contact.FirstName,
			LastName:  contact.LastName,
			Email:     contact.Email,
			CartID:    cartID,
			CreatedAt: checkedOutAt,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		if err := q.DeactivateCart(ctx, cartID); err != nil {
			return domain.Order{}, fmt.Errorf("q.DeactivateCart: %w", err)
		}

		sold, err := q.MarkCartItemsSold(ctx, db.MarkCartItemsSoldParams{
			SoldAt: &checkedOutAt,
			CartID: cartID,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.MarkCartItemsSold: %w", err)
		}
		if sold != int64(len(locked)) {
			return domain.Order{}, fmt.Errorf("marked %d items sold, expected %d", sold, len(locked))
		}

		if _, err := q.CreateCart(ctx, cart.UserID); err != nil {
			return domain.Order{}, fmt.Errorf("q.CreateCart: %w", err)
		}

		rows, err := q.ListCartItems(ctx, cartID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.ListCartItems: %w", err)
		}

		return mapOrderToDomain(orderHeader{
			ID:           dbOrder.ID,
			FirstName:    dbOrder.FirstName,
			LastName:     dbOrder.LastName,
			Email:        dbOrder.Email,
			CartID:       dbOrder.CartID,
			CreatedAt:    dbOrder.CreatedAt,
			UserID:       cart.UserID,
			TotalInCents: cart.TotalInCents,
		}, rows), nil
	})
	if err != nil {
		return domain.Order{}, classifyTxErr("checkout", err)
	}

	span.SetAttributes(attribute.String("order.id", order.ID.String()))

	return order, nil
}

func lockActiveCart(ctx context.Context, q *db.Queries, cartID uuid.UUID) (db.Cart, error) {
	cart, err := q.GetCartForUpdate(ctx, cartID)
	if err != nil {
		if isNoRows(err) {
			return db.Cart{}, fmt.Errorf("cart[%s]: %w", cartID, domain.ErrNotFound)
		}
		return db.Cart{}, fmt.Errorf("q.GetCartForUpdate: %w", err)
	}

	if !cart.Active {
		return db.Cart{}, fmt.Errorf("cart[%s]: %w", cartID, domain.ErrCartInactive)
	}

	return cart, nil
}

func loadCart(ctx context.Context, q *db.Queries, dbCart db.Cart) (domain.Cart, error) {
	rows, err := q.ListCartItems(ctx, dbCart.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.ListCartItems: %w", err)
	}

	return domain.Cart{
		ID:           dbCart.ID,
		UserID:       dbCart.UserID,
		Items:        mapCartItemRowsToDomain(rows),
		TotalInCents: dbCart.TotalInCents,
		Active:       dbCart.Active,
		CreatedAt:    dbCart.CreatedAt,
	}, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func mapCartItemRowToItem(row db.ListCartItemsRow) domain.Item {
	return domain.Item{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		PriceInCents: row.PriceInCents,
		SoldAt:       row.SoldAt,
		CreatedAt:    row.CreatedAt,
	}
}

func mapCartItemRowsToDomain(rows []db.ListCartItemsRow) []domain.CartItem {
	var items []domain.CartItem

	for _, row := range rows {
		items = append(items, domain.CartItem{
			Item:         mapCartItemRowToItem(row),
			PriceInCents: row.CartPriceInCents,
			AddedAt:      row.AddedAt,
		})
	}

	return items
}
