// AngelaMos | 2026
// policy.go

package authz

import (
	"net/http"
	"strings"
)

// AnyMethod matches every HTTP method in a Rule.
const AnyMethod = "*"

// Rule ties a method and path pattern to the capability it needs.
// Patterns are slash separated; a {name} segment matches exactly one
// segment and a trailing * matches the rest of the path, including nothing.
type Rule struct {
	Method     string
	Pattern    string
	Capability Capability

	segments []string
	prefix   bool
}

// Policy is an ordered rule list. The first matching rule wins, so
// specific rules go before the broad ones they carve out of.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	compiled := make([]Rule, len(rules))
	for i, rule := range rules {
		pattern := strings.Trim(rule.Pattern, "/")
		segments := strings.Split(pattern, "/")
		if n := len(segments); n > 0 && segments[n-1] == "*" {
			rule.prefix = true
			segments = segments[:n-1]
		}
		rule.segments = segments
		compiled[i] = rule
	}
	return &Policy{rules: compiled}
}

// Match returns the capability required for a request, or false when no
// rule covers it.
func (p *Policy) Match(method, path string) (Capability, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if method == http.MethodHead {
		method = http.MethodGet
	}

	for _, rule := range p.rules {
		if rule.Method != AnyMethod && rule.Method != method {
			continue
		}
		if rule.matches(parts) {
			return rule.Capability, true
		}
	}
	return "", false
}

func (r Rule) matches(parts []string) bool {
	if r.prefix {
		if len(parts) < len(r.segments) {
			return false
		}
	} else if len(parts) != len(r.segments) {
		return false
	}

	for i, seg := range r.segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if parts[i] == "" {
				return false
			}
			continue
		}
		if seg != parts[i] {
			return false
		}
	}
	return true
}

// resource adds the usual read/write pair for a collection.
func resource(prefix string, read, write Capability) []Rule {
	return []Rule{
		{Method: http.MethodGet, Pattern: prefix + "/*", Capability: read},
		{Method: AnyMethod, Pattern: prefix + "/*", Capability: write},
	}
}

// DefaultPolicy covers every staff route under /api.
func DefaultPolicy() *Policy {
	rules := []Rule{
		{Method: AnyMethod, Pattern: "/api/users/*", Capability: UsersManage},
		{Method: AnyMethod, Pattern: "/api/admin/*", Capability: SystemAdminister},
		{Method: AnyMethod, Pattern: "/api/portal-users/*", Capability: PortalManage},

		{Method: http.MethodGet, Pattern: "/api/dashboard/*", Capability: DashboardRead},
		{Method: AnyMethod, Pattern: "/api/ai/*", Capability: AIUse},

		{Method: http.MethodGet, Pattern: "/api/rate-tables/resolve", Capability: TimeWrite},
		{Method: http.MethodGet, Pattern: "/api/rate-tables/*", Capability: BillingRead},
		{Method: AnyMethod, Pattern: "/api/rate-tables/*", Capability: RatesManage},
		{Method: http.MethodGet, Pattern: "/api/activity-templates/*", Capability: TimeRead},
		{Method: AnyMethod, Pattern: "/api/activity-templates/*", Capability: RatesManage},

		{Method: http.MethodPost, Pattern: "/api/time-entries/batch", Capability: BillingWrite},
		{Method: http.MethodPatch, Pattern: "/api/time-entries/{id}/status", Capability: BillingWrite},
		{Method: http.MethodPatch, Pattern: "/api/messages/{id}/read", Capability: MessagesRead},
		{Method: http.MethodPost, Pattern: "/api/objects/upload", Capability: DocumentsWrite},
	}

	rules = append(rules, resource("/api/clients", ClientsRead, ClientsWrite)...)
	rules = append(rules, resource("/api/cases", CasesRead, CasesWrite)...)
	rules = append(rules, resource("/api/time-entries", TimeRead, TimeWrite)...)
	rules = append(rules, resource("/api/invoices", BillingRead, BillingWrite)...)
	rules = append(rules, resource("/api/documents", DocumentsRead, DocumentsWrite)...)
	rules = append(rules, resource("/api/calendar", CalendarRead, CalendarWrite)...)
	rules = append(rules, resource("/api/messages", MessagesRead, MessagesWrite)...)
	rules = append(rules, resource("/api/compliance", ComplianceRead, ComplianceWrite)...)

	return NewPolicy(rules...)
}
