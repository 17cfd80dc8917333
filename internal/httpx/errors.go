package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/garage-sale/internal/auth"
	"github.com/nikolayk812/garage-sale/internal/domain"
)

var errBadRequest = errors.New("malformed request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

// handleError maps domain errors onto HTTP statuses. Unexpected errors are logged and hidden.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr  *domain.ValidationError
		txErr *domain.TransactionError
	)

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: vErr.Error(),
			Field:   vErr.Field,
		})
	case errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrItemSold):
		writeError(w, http.StatusConflict, "item_sold", err.Error())
	case errors.Is(err, domain.ErrItemNotInCart):
		writeError(w, http.StatusConflict, "item_not_in_cart", err.Error())
	case errors.Is(err, domain.ErrCartInactive):
		writeError(w, http.StatusConflict, "cart_inactive", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.As(err, &txErr):
		slog.WarnContext(r.Context(), "transaction aborted", "op", txErr.Op, "error", err)
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "transaction_failed", "the operation was rolled back, please retry")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", http.StatusText(http.StatusInternalServerError))
	}
}
