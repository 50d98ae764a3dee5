// AngelaMos | 2026
// authz.go

// Package authz decides staff access in one place. A route policy maps
// each request to a capability and a role table says which roles hold it.
package authz

type Role string

type Capability string

const (
	RoleAttorney  Role = "attorney"
	RoleParalegal Role = "paralegal"
	RoleSecretary Role = "secretary"
	RoleAdmin     Role = "admin"
)

const (
	ClientsRead      Capability = "clients:read"
	ClientsWrite     Capability = "clients:write"
	CasesRead        Capability = "cases:read"
	CasesWrite       Capability = "cases:write"
	TimeRead         Capability = "time:read"
	TimeWrite        Capability = "time:write"
	BillingRead      Capability = "billing:read"
	BillingWrite     Capability = "billing:write"
	RatesManage      Capability = "rates:manage"
	DocumentsRead    Capability = "documents:read"
	DocumentsWrite   Capability = "documents:write"
	CalendarRead     Capability = "calendar:read"
	CalendarWrite    Capability = "calendar:write"
	MessagesRead     Capability = "messages:read"
	MessagesWrite    Capability = "messages:write"
	ComplianceRead   Capability = "compliance:read"
	ComplianceWrite  Capability = "compliance:write"
	DashboardRead    Capability = "dashboard:read"
	AIUse            Capability = "ai:use"
	PortalManage     Capability = "portal:manage"
	UsersManage      Capability = "users:manage"
	SystemAdminister Capability = "system:administer"
)

// AllCapabilities lists every capability the policy can require.
var AllCapabilities = []Capability{
	ClientsRead, ClientsWrite,
	CasesRead, CasesWrite,
	TimeRead, TimeWrite,
	BillingRead, BillingWrite,
	RatesManage,
	DocumentsRead, DocumentsWrite,
	CalendarRead, CalendarWrite,
	MessagesRead, MessagesWrite,
	ComplianceRead, ComplianceWrite,
	DashboardRead,
	AIUse,
	PortalManage,
	UsersManage,
	SystemAdminister,
}

// RoleTable maps a role to the set of capabilities it holds.
type RoleTable map[Role]map[Capability]struct{}

func capabilitySet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

func without(caps []Capability, excluded ...Capability) []Capability {
	skip := capabilitySet(excluded...)
	out := make([]Capability, 0, len(caps))
	for _, c := range caps {
		if _, ok := skip[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// DefaultRoles: admin holds everything, attorneys everything except staff
// and system administration. Paralegals do case work without touching
// invoices, rates or portal accounts. Secretaries handle intake and
// scheduling.
func DefaultRoles() RoleTable {
	return RoleTable{
		RoleAdmin:    capabilitySet(AllCapabilities...),
		RoleAttorney: capabilitySet(without(AllCapabilities, UsersManage, SystemAdminister)...),
		RoleParalegal: capabilitySet(
			ClientsRead, ClientsWrite,
			CasesRead, CasesWrite,
			TimeRead, TimeWrite,
			BillingRead,
			DocumentsRead, DocumentsWrite,
			CalendarRead, CalendarWrite,
			MessagesRead, MessagesWrite,
			ComplianceRead, ComplianceWrite,
			DashboardRead,
			AIUse,
		),
		RoleSecretary: capabilitySet(
			ClientsRead, ClientsWrite,
			CasesRead,
			TimeRead,
			DocumentsRead, DocumentsWrite,
			CalendarRead, CalendarWrite,
			MessagesRead, MessagesWrite,
			ComplianceRead,
			DashboardRead,
		),
	}
}

func (t RoleTable) Can(role string, capability Capability) bool {
	caps, ok := t[Role(role)]
	if !ok {
		return false
	}
	_, ok = caps[capability]
	return ok
}
