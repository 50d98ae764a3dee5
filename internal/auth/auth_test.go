// AngelaMos | 2026
// auth_test.go

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

type fakeUsers struct {
	byID       map[string]*UserInfo
	loginCalls int
}

func newFakeUsers(t *testing.T) *fakeUsers {
	t.Helper()

	hash, err := core.HashPassword("correct-horse")
	require.NoError(t, err)

	return &fakeUsers{byID: map[string]*UserInfo{
		"u-1": {
			ID:           "u-1",
			Username:     "jdoe",
			Email:        "jdoe@example.com",
			PasswordHash: hash,
			FirstName:    "Jane",
			LastName:     "Doe",
			Role:         "attorney",
			IsActive:     true,
		},
		"u-2": {
			ID:           "u-2",
			Username:     "retired",
			PasswordHash: hash,
			Role:         "paralegal",
			IsActive:     false,
		},
	}}
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*UserInfo, error) {
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id string, update ProfileUpdate) (*UserInfo, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) RecordLogin(_ context.Context, _ string) error {
	f.loginCalls++
	return nil
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(t *testing.T) (*chi.Mux, *fakeUsers, *Signer) {
	t.Helper()

	signer, err := NewSigner("staff", "0123456789abcdef0123456789abcdef", "lawcrm", time.Hour)
	require.NoError(t, err)

	users := newFakeUsers(t)
	h := NewHandler(NewService(users, signer), false)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(
			r,
			middleware.Authenticator(signer, middleware.StaffRealm),
			middleware.OptionalAuth(signer, middleware.StaffRealm),
			passthrough,
		)
	})
	return r, users, signer
}

func postJSON(t *testing.T, r http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.StaffRealm.Cookie {
			return c
		}
	}
	return nil
}

func TestLoginWrongPasswordIsRejectedWithoutCookie(t *testing.T) {
	r, users, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/login", LoginRequest{Username: "jdoe", Password: "wrong-password"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec))
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
	assert.Zero(t, users.loginCalls)
}

func TestLoginUnknownUserIsRejected(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/login", LoginRequest{Username: "nobody", Password: "correct-horse"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestLoginInactiveUserIsForbidden(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/login", LoginRequest{Username: "retired", Password: "correct-horse"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestLoginSetsHTTPOnlyCookie(t *testing.T) {
	r, users, signer := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/login", LoginRequest{Username: "jdoe", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 1, users.loginCalls)

	claims, err := signer.VerifyToken(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "attorney", claims.Role)
}

func TestLoginValidationErrors(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/login", map[string]string{"username": "jdoe"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body core.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "password")
}

func TestMeWithoutSessionReturnsNull(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":null}`, rec.Body.String())
}

func TestMeWithSessionReturnsUser(t *testing.T) {
	r, _, _ := newTestRouter(t)

	login := postJSON(t, r, "/api/auth/login", LoginRequest{Username: "jdoe", Password: "correct-horse"})
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "jdoe", body.Data.Username)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	r, users, _ := newTestRouter(t)

	login := postJSON(t, r, "/api/auth/login", LoginRequest{Username: "jdoe", Password: "correct-horse"})
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	put := func(body ChangePasswordRequest) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, "/api/auth/password", bytes.NewReader(payload))
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := put(ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "battery-staple"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = put(ChangePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "battery-staple"})
	assert.Equal(t, http.StatusOK, rec.Code)

	ok, err := core.VerifyPassword("battery-staple", users.byID["u-1"].PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProfileRequiresSession(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignerRealmsAreIndependent(t *testing.T) {
	staff, err := NewSigner("staff", "0123456789abcdef0123456789abcdef", "lawcrm", time.Hour)
	require.NoError(t, err)
	portal, err := NewSigner("portal", "fedcba9876543210fedcba9876543210", "lawcrm", time.Hour)
	require.NoError(t, err)
	sameSecret, err := NewSigner("portal", "0123456789abcdef0123456789abcdef", "lawcrm", time.Hour)
	require.NoError(t, err)

	token, _, err := staff.Sign(middleware.Claims{Subject: "u-1", Role: "admin"})
	require.NoError(t, err)

	_, err = portal.VerifyToken(context.Background(), token)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))

	_, err = sameSecret.VerifyToken(context.Background(), token)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestSignerCarriesPortalClient(t *testing.T) {
	portal, err := NewSigner("portal", "", "lawcrm", time.Hour)
	require.NoError(t, err)

	token, _, err := portal.Sign(middleware.Claims{Subject: "p-1", ClientID: "c-9"})
	require.NoError(t, err)

	claims, err := portal.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "p-1", claims.Subject)
	assert.Equal(t, "c-9", claims.ClientID)
	assert.Empty(t, claims.Role)
}

func TestSignerReportsExpiry(t *testing.T) {
	signer, err := NewSigner("staff", "0123456789abcdef0123456789abcdef", "lawcrm", time.Hour)
	require.NoError(t, err)
	signer.expire = -time.Hour

	token, _, err := signer.Sign(middleware.Claims{Subject: "u-1", Role: "attorney"})
	require.NoError(t, err)

	_, err = signer.VerifyToken(context.Background(), token)
	assert.True(t, errors.Is(err, core.ErrTokenExpired))

	_, err = signer.VerifyToken(context.Background(), token+"x")
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}
