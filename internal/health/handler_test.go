// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func readiness(t *testing.T, h *Handler) (int, ReadinessResponse) {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestReadinessAllHealthy(t *testing.T) {
	h := NewHandler("1.0.0",
		Check{Name: "database", Checker: CheckerFunc(up), Required: true},
		Check{Name: "redis", Checker: CheckerFunc(up)},
	)

	code, body := readiness(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusOK, body.Status)
	assert.Equal(t, "1.0.0", body.Version)
	require.Len(t, body.Checks, 2)
	assert.Equal(t, "database", body.Checks[0].Name)
	assert.Equal(t, "redis", body.Checks[1].Name)
}

func TestReadinessOptionalFailureDegrades(t *testing.T) {
	h := NewHandler("",
		Check{Name: "database", Checker: CheckerFunc(up), Required: true},
		Check{Name: "storage", Checker: CheckerFunc(down)},
	)

	code, body := readiness(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusDegraded, body.Status)
	assert.False(t, body.Checks[1].Healthy)
	assert.Equal(t, "ping failed", body.Checks[1].Message)
}

func TestReadinessRequiredFailure(t *testing.T) {
	h := NewHandler("",
		Check{Name: "database", Checker: CheckerFunc(down), Required: true},
	)

	code, body := readiness(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, StatusUnavailable, body.Status)
}

func TestReadinessNilChecker(t *testing.T) {
	h := NewHandler("", Check{Name: "database", Required: true})

	code, body := readiness(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not configured", body.Checks[0].Message)
}

func TestShutdown(t *testing.T) {
	h := NewHandler("", Check{Name: "database", Checker: CheckerFunc(up), Required: true})
	h.SetShutdown(true)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.Contains(t, rec.Body.String(), StatusShuttingDown)
	}
}
