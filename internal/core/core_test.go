// AngelaMos | 2026
// core_test.go

package core

import (
	"context"
	"database/sql"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/config"
)

func TestFilterBuildsPositionalConditions(t *testing.T) {
	var f Filter
	f.Eq("status", "active")
	f.Eq("client_id", "")
	f.Search("50%_off", "title", "description")
	f.Add("due_date <= $%d", "2026-01-01")

	assert.Equal(t,
		`status = $1 AND (title ILIKE $2 OR description ILIKE $2) AND due_date <= $3`,
		f.Where())
	assert.Equal(t, []any{"active", `%50\%\_off%`, "2026-01-01"}, f.Args())

	clause, args := f.PageClause(PageParams{Page: 3, PageSize: 10})
	assert.Equal(t, "LIMIT $4 OFFSET $5", clause)
	assert.Equal(t, []any{"active", `%50\%\_off%`, "2026-01-01", 10, 20}, args)
	assert.Len(t, f.Args(), 3)
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	var f Filter
	assert.Equal(t, "TRUE", f.Where())
}

func TestPageFromRequestClamps(t *testing.T) {
	p := PageFromRequest(httptest.NewRequest("GET", "/?page=0&pageSize=500", nil))
	assert.Equal(t, PageParams{Page: 1, PageSize: MaxPageSize}, p)

	p = PageFromRequest(httptest.NewRequest("GET", "/?page=abc", nil))
	assert.Equal(t, PageParams{Page: 1, PageSize: DefaultPageSize}, p)
}

func TestPageFromRequestBoundsOffset(t *testing.T) {
	p := PageFromRequest(httptest.NewRequest("GET", "/?page=9223372036854775807&pageSize=100", nil))
	assert.Equal(t, MaxPage, p.Page)
	assert.Positive(t, p.Offset())
	assert.Equal(t, (MaxPage-1)*MaxPageSize, p.Offset())
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, ErrDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrInvalidReference},
		{"check", &pgconn.PgError{Code: "23514"}, ErrInvalidInput},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, TranslateError("get case", tt.err), tt.want)
		})
	}

	assert.NoError(t, TranslateError("noop", nil))

	other := errors.New("boom")
	assert.ErrorIs(t, TranslateError("list", other), other)
}

func TestTranslateDeleteErrorReportsReference(t *testing.T) {
	err := TranslateDeleteError("delete client",
		&pgconn.PgError{Code: "23503", TableName: "cases"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "cases")
}

func TestTokensHashAndCompare(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 43)

	hash := HashToken(token)
	assert.True(t, CompareTokenHash(token, hash))
	assert.False(t, CompareTokenHash(token+"x", hash))
}

func TestPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	ok, err := VerifyPasswordTimingSafe("correct horse", &hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPasswordTimingSafe("wrong", &hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisDisabledIsNilSafe(t *testing.T) {
	r, err := NewRedis(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, r)

	assert.False(t, r.Enabled())
	assert.Nil(t, r.Raw())
	assert.NoError(t, r.Close())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrFeatureDisabled)
	assert.NotNil(t, r.PoolStats())
}

func TestRedisConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	r, err := NewRedis(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	assert.True(t, r.Enabled())
	assert.NotNil(t, r.Raw())
	assert.NoError(t, r.Ping(context.Background()))
}

func TestRedisBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(),
		sampler(0, "development").Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.1).Description(),
		sampler(0, "production").Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.5).Description(),
		sampler(0.5, "production").Description())
}

func TestTelemetryDisabled(t *testing.T) {
	tel, err := NewTelemetry(context.Background(), config.OtelConfig{}, config.AppConfig{})
	require.NoError(t, err)
	assert.False(t, tel.Enabled())
	assert.NoError(t, tel.Shutdown(context.Background()))

	ctx, span := StartSpan(context.Background(), "noop")
	EndSpan(span, errors.New("ignored by the noop tracer"))
	assert.Empty(t, TraceIDFromContext(ctx))
}
