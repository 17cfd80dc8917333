package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), currentUser(r).ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := OrderListResponse{Orders: make([]OrderResponse, len(orders))}
	for i, order := range orders {
		resp.Orders[i] = mapOrderToResponse(order)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetOrder hides orders of other users behind 404.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if order.UserID != currentUser(r).ID {
		writeError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}
