package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/garage-sale/internal/auth"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(tracing)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(h.auth.LoadUser)

	r.Get("/healthz", h.Health)
	r.Get("/", h.Index)

	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.ListItems)
		r.Get("/{id}/", h.GetItem)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/", h.CreateItem)
			r.Post("/{id}/update", h.UpdateItem)
			r.Post("/{id}/delete", h.DeleteItem)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/cart", h.GetCart)
		r.Post("/cart/add", h.AddToCart)
		r.Post("/cart/remove", h.RemoveFromCart)

		r.Get("/checkout", h.CheckoutForm)
		r.Post("/checkout", h.Checkout)

		r.Get("/orders/", h.ListOrders)
		r.Get("/orders/{id}/", h.GetOrder)
	})

	r.Get("/accounts/login", h.LoginForm)
	r.Post("/accounts/login", h.Login)
	r.Post("/accounts/logout", h.Logout)

	return r
}
