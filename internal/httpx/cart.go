package httpx

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/garage-sale/internal/domain"
)

var checkoutFields = []string{"first_name", "last_name", "email"}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetOrCreateActive(r.Context(), currentUser(r).ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(cart))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := readFields(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	itemID, err := parseUUIDField(fields, "item_id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cart, err := h.carts.GetOrCreateActive(ctx, currentUser(r).ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	added, err := h.carts.AddItem(ctx, cart.ID, itemID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !added {
		handleError(w, r, fmt.Errorf("item[%s]: %w", itemID, domain.ErrItemSold))
		return
	}

	slog.DebugContext(ctx, "item added to cart", "cart_id", cart.ID, "item_id", itemID)

	http.Redirect(w, r, catalogPath, http.StatusSeeOther)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := readFields(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	itemID, err := parseUUIDField(fields, "item_id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cart, err := h.carts.GetOrCreateActive(ctx, currentUser(r).ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	removed, err := h.carts.RemoveItem(ctx, cart.ID, itemID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !removed {
		handleError(w, r, fmt.Errorf("item[%s]: %w", itemID, domain.ErrItemNotInCart))
		return
	}

	slog.DebugContext(ctx, "item removed from cart", "cart_id", cart.ID, "item_id", itemID)

	http.Redirect(w, r, catalogPath, http.StatusSeeOther)
}

func (h *Handler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetOrCreateActive(r.Context(), currentUser(r).ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CheckoutFormResponse{
		Cart:   mapCartToResponse(cart),
		Fields: checkoutFields,
	})
}

// Checkout turns the caller's active cart into an order. A repeated X-Idempotency-Key
// is answered like the original request without checking out again.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := currentUser(r)

	fields, err := readFields(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	contact, err := parseContact(fields)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var cacheKey string
	if key := r.Header.Get(HeaderIdempotencyKey); key != "" && h.cache != nil {
		cacheKey = h.cache.GenerateKey("checkout", user.ID.String()+":"+key)

		orderID, err := h.cache.Get(ctx, cacheKey)
		if err != nil {
			slog.WarnContext(ctx, "idempotency lookup failed", "error", err)
		} else if orderID != "" {
			slog.InfoContext(ctx, "checkout replayed", "order_id", orderID)
			http.Redirect(w, r, catalogPath, http.StatusSeeOther)
			return
		}
	}

	cart, err := h.carts.GetOrCreateActive(ctx, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	order, err := h.carts.Checkout(ctx, cart.ID, contact)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if cacheKey != "" {
		if err := h.cache.Set(ctx, cacheKey, order.ID.String(), h.idempotencyTTL); err != nil {
			slog.WarnContext(ctx, "idempotency store failed", "order_id", order.ID, "error", err)
		}
	}

	slog.InfoContext(ctx, "checkout completed",
		"order_id", order.ID,
		"cart_id", order.CartID,
		"items", len(order.Items),
		"total_in_cents", order.TotalInCents,
	)

	http.Redirect(w, r, catalogPath, http.StatusSeeOther)
}
