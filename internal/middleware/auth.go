// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

// Realm is one independent authentication domain: its own cookie, its own
// signing key and its own slot in the request context.
type Realm struct {
	Name   string
	Cookie string
}

var (
	StaffRealm  = Realm{Name: "staff", Cookie: "token"}
	PortalRealm = Realm{Name: "portal", Cookie: "portal_token"}
)

func (r Realm) contextKey() contextKey {
	return contextKey("claims:" + r.Name)
}

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// Claims is what a verified session token carries. Role is set for staff
// sessions, ClientID for portal sessions.
type Claims struct {
	Subject  string
	Role     string
	ClientID string
}

func Authenticator(verifier TokenVerifier, realm Realm) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromCookie(r, realm.Cookie)
			if token == "" {
				core.JSONError(w, core.UnauthorizedError("not authenticated"))
				return
			}

			claims, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), realm, claims)))
		})
	}
}

// OptionalAuth attaches claims when a valid cookie is present and lets the
// request through either way.
func OptionalAuth(verifier TokenVerifier, realm Realm) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := TokenFromCookie(r, realm.Cookie); token != "" {
				claims, err := verifier.VerifyToken(r.Context(), token)
				if err == nil {
					r = r.WithContext(WithClaims(r.Context(), realm, claims))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func TokenFromCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func WithClaims(ctx context.Context, realm Realm, claims *Claims) context.Context {
	return context.WithValue(ctx, realm.contextKey(), claims)
}

func GetClaims(ctx context.Context, realm Realm) *Claims {
	if claims, ok := ctx.Value(realm.contextKey()).(*Claims); ok {
		return claims
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if claims := GetClaims(ctx, StaffRealm); claims != nil {
		return claims.Subject
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if claims := GetClaims(ctx, StaffRealm); claims != nil {
		return claims.Role
	}
	return ""
}

func GetPortalUserID(ctx context.Context) string {
	if claims := GetClaims(ctx, PortalRealm); claims != nil {
		return claims.Subject
	}
	return ""
}

func GetPortalClientID(ctx context.Context) string {
	if claims := GetClaims(ctx, PortalRealm); claims != nil {
		return claims.ClientID
	}
	return ""
}
