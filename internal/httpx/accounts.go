package httpx

import (
	"log/slog"
	"net/http"

	"github.com/nikolayk812/garage-sale/internal/auth"
)

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LoginFormResponse{
		Fields: []string{"username", "password"},
		Next:   r.URL.Query().Get("next"),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	user, err := h.auth.Login(w, r, fields["username"], fields["password"])
	if err != nil {
		handleError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "user logged in", "user_id", user.ID)

	next := fields["next"]
	if next == "" {
		next = r.URL.Query().Get("next")
	}

	http.Redirect(w, r, auth.SafeRedirect(next, catalogPath), http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(w, r); err != nil {
		handleError(w, r, err)
		return
	}

	http.Redirect(w, r, catalogPath, http.StatusSeeOther)
}
