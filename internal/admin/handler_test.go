// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	counts *Counts
	err    error
}

func (f *fakeRepo) Counts(context.Context) (*Counts, error) {
	return f.counts, f.err
}

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSystemStats(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Repo:    &fakeRepo{counts: &Counts{Clients: 4, Cases: 7}},
		DBStats: func() sql.DBStats { return sql.DBStats{OpenConnections: 3} },
		DBPing:  func(context.Context) error { return nil },
		Version: "2.1.0",
	})

	rec := serve(t, h, "/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2.1.0", body.Data.Version)
	assert.True(t, body.Data.Database.Healthy)
	assert.Equal(t, 3, body.Data.Database.Stats.OpenConnections)
	assert.False(t, body.Data.Redis.Enabled)
	assert.False(t, body.Data.Redis.Healthy)
	assert.Nil(t, body.Data.Redis.Stats)
	require.NotNil(t, body.Data.Records)
	assert.Equal(t, 7, body.Data.Records.Cases)
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}

func TestSystemStatsCountFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Repo: &fakeRepo{err: errors.New("relation does not exist")},
	})

	rec := serve(t, h, "/admin/stats")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDatabaseUnhealthy(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBPing: func(context.Context) error { return errors.New("down") },
	})

	rec := serve(t, h, "/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":{"healthy":false}`)
}
