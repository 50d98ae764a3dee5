// AngelaMos | 2026
// handler_test.go

package timeentry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateIgnoresBillingStatus(t *testing.T) {
	h := newHarness(t)

	e := h.startTimer(t)
	h.advance(45 * time.Minute)
	_, err := h.svc.Stop(context.Background(), e.ID)
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(h.svc).RegisterRoutes(r)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		body := `{"description":"Reviewed with client","status":"paid"}`
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, "/time-entries/"+e.ID, strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code, method)

		var resp struct {
			Data TimeEntry `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, StatusDraft, resp.Data.Status, method)
		assert.Equal(t, "Reviewed with client", *resp.Data.Description, method)
	}

	assert.Equal(t, StatusDraft, h.entries.rows[e.ID].Status)
}
