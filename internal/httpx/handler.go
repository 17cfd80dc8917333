// Package httpx exposes the storefront over HTTP.
package httpx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nikolayk812/garage-sale/internal/auth"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
)

const (
	HeaderIdempotencyKey = "X-Idempotency-Key"

	catalogPath = "/items/"
)

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies of the HTTP handlers. Cache is optional.
type Dependencies struct {
	Items          port.ItemRepository
	Carts          port.CartRepository
	Orders         port.OrderRepository
	Catalog        port.Catalog
	Auth           *auth.Authenticator
	Cache          port.Cache
	IdempotencyTTL time.Duration
	DB             Pinger
}

type Handler struct {
	items          port.ItemRepository
	carts          port.CartRepository
	orders         port.OrderRepository
	catalog        port.Catalog
	auth           *auth.Authenticator
	cache          port.Cache
	idempotencyTTL time.Duration
	db             Pinger
}

func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Items == nil:
		return nil, fmt.Errorf("items is nil")
	case deps.Carts == nil:
		return nil, fmt.Errorf("carts is nil")
	case deps.Orders == nil:
		return nil, fmt.Errorf("orders is nil")
	case deps.Catalog == nil:
		return nil, fmt.Errorf("catalog is nil")
	case deps.Auth == nil:
		return nil, fmt.Errorf("auth is nil")
	case deps.DB == nil:
		return nil, fmt.Errorf("db is nil")
	}

	ttl := deps.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Handler{
		items:          deps.Items,
		carts:          deps.Carts,
		orders:         deps.Orders,
		catalog:        deps.Catalog,
		auth:           deps.Auth,
		cache:          deps.Cache,
		idempotencyTTL: ttl,
		db:             deps.DB,
	}, nil
}

// currentUser is only called behind auth.RequireAuth.
func currentUser(r *http.Request) domain.User {
	user, _ := auth.UserFromContext(r.Context())
	return user
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
