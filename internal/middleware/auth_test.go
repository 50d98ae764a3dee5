// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type fakeVerifier map[string]*Claims

func (f fakeVerifier) VerifyToken(_ context.Context, token string) (*Claims, error) {
	if token == "expired" {
		return nil, core.ErrTokenExpired
	}
	if c, ok := f[token]; ok {
		return c, nil
	}
	return nil, core.ErrUnauthorized
}

var verifier = fakeVerifier{
	"staff-token":  {Subject: "user-1", Role: "attorney"},
	"portal-token": {Subject: "portal-1", ClientID: "client-1"},
}

func withCookie(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	if name != "" {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return req
}

func TestAuthenticator(t *testing.T) {
	var seen *Claims
	h := Authenticator(verifier, StaffRealm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClaims(r.Context(), StaffRealm)
		assert.Equal(t, "user-1", GetUserID(r.Context()))
		assert.Equal(t, "attorney", GetUserRole(r.Context()))
		assert.Empty(t, GetPortalUserID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		cookie string
		value  string
		code   int
		errMsg string
	}{
		{name: "valid staff cookie", cookie: "token", value: "staff-token", code: http.StatusOK},
		{name: "no cookie", code: http.StatusUnauthorized},
		{name: "portal cookie on staff realm", cookie: "portal_token", value: "portal-token", code: http.StatusUnauthorized},
		{name: "unknown token", cookie: "token", value: "garbage", code: http.StatusUnauthorized},
		{name: "expired token", cookie: "token", value: "expired", code: http.StatusUnauthorized, errMsg: "TOKEN_EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, withCookie(tt.cookie, tt.value))

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.NotNil(t, seen)
			} else {
				assert.Nil(t, seen)
			}
			if tt.errMsg != "" {
				assert.Contains(t, rec.Body.String(), tt.errMsg)
			}
		})
	}
}

func TestOptionalAuthRealmsAreIndependent(t *testing.T) {
	var staffID, portalClient string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID = GetUserID(r.Context())
		portalClient = GetPortalClientID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := OptionalAuth(verifier, StaffRealm)(OptionalAuth(verifier, PortalRealm)(inner))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withCookie("portal_token", "portal-token"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, staffID)
	assert.Equal(t, "client-1", portalClient)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withCookie("token", "garbage"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, staffID)
	assert.Empty(t, portalClient)
}
