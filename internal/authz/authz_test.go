// AngelaMos | 2026
// authz_test.go

package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

func TestPolicyMatch(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		method string
		path   string
		want   Capability
	}{
		{http.MethodGet, "/api/clients", ClientsRead},
		{http.MethodGet, "/api/clients/", ClientsRead},
		{http.MethodPost, "/api/clients", ClientsWrite},
		{http.MethodDelete, "/api/clients/0d0c", ClientsWrite},
		{http.MethodHead, "/api/cases/1", CasesRead},
		{http.MethodPatch, "/api/time-entries/1/stop", TimeWrite},
		{http.MethodPost, "/api/time-entries/batch", BillingWrite},
		{http.MethodGet, "/api/time-entries/active", TimeRead},
		{http.MethodPost, "/api/invoices/generate", BillingWrite},
		{http.MethodPatch, "/api/invoices/9/status", BillingWrite},
		{http.MethodGet, "/api/rate-tables/resolve", TimeWrite},
		{http.MethodGet, "/api/rate-tables", BillingRead},
		{http.MethodPut, "/api/rate-tables/3", RatesManage},
		{http.MethodPatch, "/api/messages/7/read", MessagesRead},
		{http.MethodPost, "/api/messages", MessagesWrite},
		{http.MethodGet, "/api/calendar/events", CalendarRead},
		{http.MethodPatch, "/api/compliance/deadlines/4/complete", ComplianceWrite},
		{http.MethodPost, "/api/ai/chat", AIUse},
		{http.MethodGet, "/api/users", UsersManage},
		{http.MethodPost, "/api/portal-users", PortalManage},
		{http.MethodPost, "/api/objects/upload", DocumentsWrite},
		{http.MethodGet, "/api/dashboard/metrics", DashboardRead},
		{http.MethodGet, "/api/admin/stats", SystemAdminister},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got, ok := p.Match(tt.method, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyUnmatched(t *testing.T) {
	p := DefaultPolicy()

	for _, path := range []string{"/api/unknown", "/api", "/api/clientsx", "/healthz"} {
		_, ok := p.Match(http.MethodGet, path)
		assert.False(t, ok, path)
	}
}

func TestParamSegmentNeedsExactlyOneSegment(t *testing.T) {
	p := NewPolicy(Rule{Method: http.MethodPatch, Pattern: "/api/messages/{id}/read", Capability: MessagesRead})

	_, ok := p.Match(http.MethodPatch, "/api/messages/1/read")
	assert.True(t, ok)
	_, ok = p.Match(http.MethodPatch, "/api/messages/1/2/read")
	assert.False(t, ok)
	_, ok = p.Match(http.MethodPatch, "/api/messages//read")
	assert.False(t, ok)
}

func TestRoleTiers(t *testing.T) {
	roles := DefaultRoles()

	for _, c := range AllCapabilities {
		assert.True(t, roles.Can("admin", c), "admin %s", c)
	}

	assert.False(t, roles.Can("attorney", UsersManage))
	assert.False(t, roles.Can("attorney", SystemAdminister))
	assert.True(t, roles.Can("attorney", BillingWrite))
	assert.True(t, roles.Can("attorney", PortalManage))

	assert.True(t, roles.Can("paralegal", TimeWrite))
	assert.False(t, roles.Can("paralegal", BillingWrite))
	assert.False(t, roles.Can("paralegal", PortalManage))

	assert.True(t, roles.Can("secretary", CalendarWrite))
	assert.False(t, roles.Can("secretary", TimeWrite))
	assert.False(t, roles.Can("secretary", AIUse))

	assert.False(t, roles.Can("client", ClientsRead))
	assert.False(t, roles.Can("", ClientsRead))
}

func serve(a *Authorizer, role, method, path string) int {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req = req.WithContext(middleware.WithClaims(req.Context(), middleware.StaffRealm,
			&middleware.Claims{Subject: "u-1", Role: role}))
	}

	rec := httptest.NewRecorder()
	a.Handler(next).ServeHTTP(rec, req)
	return rec.Code
}

func TestHandler(t *testing.T) {
	a := New(DefaultPolicy(), DefaultRoles())

	assert.Equal(t, http.StatusTeapot, serve(a, "attorney", http.MethodPost, "/api/invoices/generate"))
	assert.Equal(t, http.StatusForbidden, serve(a, "paralegal", http.MethodPost, "/api/invoices/generate"))
	assert.Equal(t, http.StatusForbidden, serve(a, "attorney", http.MethodDelete, "/api/users/abc"))
	assert.Equal(t, http.StatusTeapot, serve(a, "admin", http.MethodDelete, "/api/users/abc"))
	assert.Equal(t, http.StatusForbidden, serve(a, "admin", http.MethodGet, "/api/not-in-policy"))
	assert.Equal(t, http.StatusUnauthorized, serve(a, "", http.MethodGet, "/api/clients"))
}

func TestParalegalEditsTimeButNotBillingStatus(t *testing.T) {
	a := New(DefaultPolicy(), DefaultRoles())

	assert.Equal(t, http.StatusTeapot, serve(a, "paralegal", http.MethodPut, "/api/time-entries/abc"))
	assert.Equal(t, http.StatusTeapot, serve(a, "paralegal", http.MethodPatch, "/api/time-entries/abc"))
	assert.Equal(t, http.StatusForbidden, serve(a, "paralegal", http.MethodPatch, "/api/time-entries/abc/status"))
	assert.Equal(t, http.StatusForbidden, serve(a, "paralegal", http.MethodPost, "/api/time-entries/batch"))
	assert.Equal(t, http.StatusTeapot, serve(a, "attorney", http.MethodPatch, "/api/time-entries/abc/status"))
}
