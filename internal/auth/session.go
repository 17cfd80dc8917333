// Package auth implements password hashing and the cookie session that identifies the shopper.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
)

const (
	SessionName = "garage_sale"
	LoginPath   = "/accounts/login"

	userIDKey = "user_id"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

type contextKey struct{}

type Authenticator struct {
	store sessions.Store
	users port.UserRepository
}

func NewAuthenticator(store sessions.Store, users port.UserRepository) (*Authenticator, error) {
	if store == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if users == nil {
		return nil, fmt.Errorf("users is nil")
	}

	return &Authenticator{
		store: store,
		users: users,
	}, nil
}

// NewCookieStore returns the session store used in production: HTTP-only, same-site lax cookies.
func NewCookieStore(secret []byte, secure bool, maxAge int) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(contextKey{}).(domain.User)
	return user, ok
}

// LoadUser resolves the session user, if any, into the request context.
// A stale or tampered session is treated as anonymous.
func (a *Authenticator) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, err := a.store.Get(r, SessionName)
		if err != nil {
			slog.DebugContext(ctx, "session decode failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		raw, _ := session.Values[userIDKey].(string)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.users.GetUser(ctx, userID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			next.ServeHTTP(w, r)
			return
		case err != nil:
			slog.ErrorContext(ctx, "load session user", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error", http.StatusText(http.StatusInternalServerError))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
	})
}

// RequireAuth sends anonymous browser requests to the login page and
// answers 401 to clients asking for JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			writeError(w, http.StatusUnauthorized, "authentication_required", "login required")
			return
		}

		http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
	})
}

func LoginURL(next string) string {
	return LoginPath + "?" + url.Values{"next": {next}}.Encode()
}

// Login checks the credentials and stores the user id in the session.
func (a *Authenticator) Login(w http.ResponseWriter, r *http.Request, username, password string) (domain.User, error) {
	ctx := r.Context()

	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("users.GetUserByUsername: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return domain.User{}, fmt.Errorf("VerifyPassword: %w", err)
	}
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}

	// ignore decode errors, a fresh session replaces a broken one
	session, _ := a.store.Get(r, SessionName)
	session.Values[userIDKey] = user.ID.String()

	if err := session.Save(r, w); err != nil {
		return domain.User{}, fmt.Errorf("session.Save: %w", err)
	}

	return user, nil
}

func (a *Authenticator) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.store.Get(r, SessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}

	return nil
}

// SafeRedirect keeps post-login redirects on this site.
func SafeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

// writeError answers in the JSON error shape of the HTTP handlers.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{code, message})
}
