package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *mocks.UserRepository, domain.User) {
	t.Helper()

	hash, err := hashWith("pw", testParams)
	require.NoError(t, err)

	user := domain.User{ID: uuid.New(), Username: "alice", PasswordHash: hash}

	users := new(mocks.UserRepository)
	users.On("GetUserByUsername", mock.Anything, "alice").Return(user, nil).Maybe()
	users.On("GetUserByUsername", mock.Anything, mock.Anything).Return(domain.User{}, domain.ErrNotFound).Maybe()
	users.On("GetUser", mock.Anything, user.ID).Return(user, nil).Maybe()

	a, err := NewAuthenticator(sessions.NewCookieStore([]byte("test-secret-key")), users)
	require.NoError(t, err)

	return a, users, user
}

// login performs a login and returns the session cookie.
func login(t *testing.T, a *Authenticator, username, password string) (*http.Cookie, error) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, LoginPath, nil)

	if _, err := a.Login(rec, req, username, password); err != nil {
		return nil, err
	}

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionName, cookies[0].Name)

	return cookies[0], nil
}

func TestLogin(t *testing.T) {
	a, _, _ := newTestAuthenticator(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "ok", username: "alice", password: "pw"},
		{name: "wrong password", username: "alice", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "bob", password: "pw", wantErr: ErrInvalidCredentials},
		{name: "empty password", username: "alice", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cookie, err := login(t, a, tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, cookie.Value)
		})
	}
}

func TestLoginRepositoryError(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetUserByUsername", mock.Anything, "alice").Return(domain.User{}, errors.New("db down"))

	a, err := NewAuthenticator(sessions.NewCookieStore([]byte("test-secret-key")), users)
	require.NoError(t, err)

	_, err = login(t, a, "alice", "pw")
	require.EqualError(t, err, "users.GetUserByUsername: db down")
}

func TestLoadUserAndRequireAuth(t *testing.T) {
	a, _, user := newTestAuthenticator(t)

	cookie, err := login(t, a, "alice", "pw")
	require.NoError(t, err)

	protected := a.LoadUser(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := UserFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, user.ID, got.ID)
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name         string
		cookie       *http.Cookie
		accept       string
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "logged in",
			cookie:     cookie,
			wantStatus: http.StatusNoContent,
		},
		{
			name:         "anonymous browser",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/accounts/login?next=%2Fcart%3Fx%3D1",
		},
		{
			name:       "anonymous json client",
			accept:     "application/json",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "tampered cookie",
			cookie:       &http.Cookie{Name: SessionName, Value: "garbage"},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/accounts/login?next=%2Fcart%3Fx%3D1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cart?x=1", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}

			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestLoadUserRepositoryError(t *testing.T) {
	hash, err := hashWith("pw", testParams)
	require.NoError(t, err)

	user := domain.User{ID: uuid.New(), Username: "alice", PasswordHash: hash}

	users := new(mocks.UserRepository)
	users.On("GetUserByUsername", mock.Anything, "alice").Return(user, nil)
	users.On("GetUser", mock.Anything, user.ID).Return(domain.User{}, errors.New("connection refused"))

	a, err := NewAuthenticator(sessions.NewCookieStore([]byte("test-secret-key")), users)
	require.NoError(t, err)

	cookie, err := login(t, a, "alice", "pw")
	require.NoError(t, err)

	handler := a.LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body.Error)
	assert.NotEmpty(t, body.Message)
}

func TestLogout(t *testing.T) {
	a, _, _ := newTestAuthenticator(t)

	cookie, err := login(t, a, "alice", "pw")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/accounts/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	require.NoError(t, a.Logout(rec, req))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/cart", SafeRedirect("/cart", "/items/"))
	assert.Equal(t, "/items/", SafeRedirect("", "/items/"))
	assert.Equal(t, "/items/", SafeRedirect("https://evil.example", "/items/"))
	assert.Equal(t, "/items/", SafeRedirect("//evil.example", "/items/"))
}
