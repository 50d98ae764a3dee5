// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

const (
	claimRole     = "role"
	claimClientID = "cid"
	minSecretLen  = 32
)

// Signer issues and verifies HS256 session tokens for a single realm. The
// realm name doubles as the audience, so a token minted for one realm never
// verifies in the other even if both were given the same secret.
type Signer struct {
	realm  string
	key    jwk.Key
	issuer string
	expire time.Duration
}

// NewSigner builds a realm signer from its own secret. An empty secret
// yields a random per-process key and a warning.
func NewSigner(realm, secret, issuer string, expire time.Duration) (*Signer, error) {
	raw := []byte(secret)
	if secret == "" {
		generated, err := core.GenerateSecretKey(minSecretLen)
		if err != nil {
			return nil, fmt.Errorf("generate %s signing key: %w", realm, err)
		}
		raw = generated
		slog.Warn("no signing secret configured, using ephemeral key",
			"realm", realm,
		)
	} else if len(raw) < minSecretLen {
		slog.Warn("signing secret is shorter than recommended",
			"realm", realm,
			"min_length", minSecretLen,
		)
	}

	key, err := jwk.Import(raw)
	if err != nil {
		return nil, fmt.Errorf("import %s signing key: %w", realm, err)
	}

	return &Signer{
		realm:  realm,
		key:    key,
		issuer: issuer,
		expire: expire,
	}, nil
}

func (s *Signer) Realm() string {
	return s.realm
}

func (s *Signer) Sign(claims middleware.Claims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expire)

	builder := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(s.issuer).
		Audience([]string{s.realm}).
		Subject(claims.Subject).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt)
	if claims.Role != "" {
		builder = builder.Claim(claimRole, claims.Role)
	}
	if claims.ClientID != "" {
		builder = builder.Claim(claimClientID, claims.ClientID)
	}

	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

func (s *Signer) VerifyToken(
	_ context.Context,
	tokenString string,
) (*middleware.Claims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), s.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.realm),
	)
	if err != nil {
		if s.isExpired(tokenString) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	claims := &middleware.Claims{Subject: subject}

	var role string
	if err := token.Get(claimRole, &role); err == nil {
		claims.Role = role
	}
	var clientID string
	if err := token.Get(claimClientID, &clientID); err == nil {
		claims.ClientID = clientID
	}

	return claims, nil
}

// isExpired re-reads a token whose validation failed. Only a correctly
// signed token counts, so a forged exp cannot change the error reported.
func (s *Signer) isExpired(tokenString string) bool {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), s.key),
		jwt.WithValidate(false),
	)
	if err != nil {
		return false
	}

	exp, ok := token.Expiration()
	return ok && time.Now().After(exp)
}
