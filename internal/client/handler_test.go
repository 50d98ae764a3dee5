// AngelaMos | 2026
// handler_test.go

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type memoryRepo struct {
	rows map[string]*Client
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[string]*Client{}}
}

func (m *memoryRepo) Create(_ context.Context, c *Client) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Client, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memoryRepo) Update(_ context.Context, c *Client) error {
	if _, ok := m.rows[c.ID]; !ok {
		return core.ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepo) List(
	_ context.Context,
	params ListParams,
	page core.PageParams,
) ([]Client, int, error) {
	out := []Client{}
	for _, c := range m.rows {
		if params.Status != "" && c.Status != params.Status {
			continue
		}
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(c.FullName()), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })

	total := len(out)
	start := min(page.Offset(), total)
	end := min(start+page.PageSize, total)
	return out[start:end], total, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *core.PageMeta  `json:"meta"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newRouter() (http.Handler, *memoryRepo) {
	repo := newMemoryRepo()
	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r)
	return r, repo
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestCreateThenGet(t *testing.T) {
	h, _ := newRouter()

	rec, env := do(t, h, http.MethodPost, "/clients", map[string]any{
		"firstName": "Maria",
		"lastName":  "Santos",
		"status":    "active",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Client
	require.NoError(t, json.Unmarshal(env.Data, &created))
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	rec, env = do(t, h, http.MethodGet, "/clients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched Client
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Maria", fetched.FirstName)
	assert.Equal(t, "Santos", fetched.LastName)
	assert.Equal(t, StatusActive, fetched.Status)
	assert.False(t, fetched.CreatedAt.IsZero())
}

func TestCreateDefaultsStatus(t *testing.T) {
	h, _ := newRouter()

	rec, env := do(t, h, http.MethodPost, "/clients", map[string]any{
		"firstName": "Ana",
		"lastName":  "Lopez",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Client
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, StatusActive, created.Status)
}

func TestCreateValidation(t *testing.T) {
	h, _ := newRouter()

	rec, env := do(t, h, http.MethodPost, "/clients", map[string]any{
		"firstName": "Maria",
		"email":     "not-an-email",
		"status":    "vip",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "lastName")
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "status")
}

func TestGetMissing(t *testing.T) {
	h, _ := newRouter()

	rec, _ := do(t, h, http.MethodGet, "/clients/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/clients/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPartialUpdate(t *testing.T) {
	h, repo := newRouter()

	_, env := do(t, h, http.MethodPost, "/clients", map[string]any{
		"firstName": "Maria",
		"lastName":  "Santos",
		"phone":     "555-0100",
	})
	var created Client
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env := do(t, h, http.MethodPatch, "/clients/"+created.ID, map[string]any{
		"status": "archived",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Client
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, StatusArchived, updated.Status)
	assert.Equal(t, "Maria", updated.FirstName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "555-0100", *updated.Phone)
	assert.Equal(t, StatusArchived, repo.rows[created.ID].Status)
}

func TestDelete(t *testing.T) {
	h, repo := newRouter()

	_, env := do(t, h, http.MethodPost, "/clients", map[string]any{
		"firstName": "Maria",
		"lastName":  "Santos",
	})
	var created Client
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ := do(t, h, http.MethodDelete, "/clients/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.rows)

	rec, _ = do(t, h, http.MethodDelete, "/clients/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPaginates(t *testing.T) {
	h, _ := newRouter()

	for _, name := range []string{"Adams", "Baker", "Clark"} {
		rec, _ := do(t, h, http.MethodPost, "/clients", map[string]any{
			"firstName": "Pat",
			"lastName":  name,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := do(t, h, http.MethodGet, "/clients?page=2&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)

	var page []Client
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page, 1)
	assert.Equal(t, "Clark", page[0].LastName)
}
