// AngelaMos | 2026
// dto.go

package rates

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateRateTableRequest struct {
	Name          string          `json:"name"          validate:"required,min=1,max=100"`
	AttorneyID    *string         `json:"attorneyId"    validate:"omitempty,uuid"`
	ClientID      *string         `json:"clientId"      validate:"omitempty,uuid"`
	ActivityType  *string         `json:"activityType"  validate:"omitempty,max=100"`
	HourlyRate    decimal.Decimal `json:"hourlyRate"`
	IsDefault     bool            `json:"isDefault"`
	EffectiveFrom *time.Time      `json:"effectiveFrom"`
}

type UpdateRateTableRequest struct {
	Name          *string          `json:"name"          validate:"omitempty,min=1,max=100"`
	AttorneyID    *string          `json:"attorneyId"    validate:"omitempty,uuid"`
	ClientID      *string          `json:"clientId"      validate:"omitempty,uuid"`
	ActivityType  *string          `json:"activityType"  validate:"omitempty,max=100"`
	HourlyRate    *decimal.Decimal `json:"hourlyRate"`
	IsDefault     *bool            `json:"isDefault"`
	EffectiveFrom *time.Time       `json:"effectiveFrom"`
}

type CreateTemplateRequest struct {
	Name            string           `json:"name"            validate:"required,min=1,max=100"`
	Activity        string           `json:"activity"        validate:"required,min=1,max=255"`
	Description     *string          `json:"description"     validate:"omitempty,max=10000"`
	UTBMSCode       *string          `json:"utbmsCode"       validate:"omitempty,max=10"`
	DefaultDuration *int             `json:"defaultDuration" validate:"omitempty,gte=0"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate"`
	AttorneyID      *string          `json:"attorneyId"      validate:"omitempty,uuid"`
	IsActive        *bool            `json:"isActive"`
}

type UpdateTemplateRequest struct {
	Name            *string          `json:"name"            validate:"omitempty,min=1,max=100"`
	Activity        *string          `json:"activity"        validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description"     validate:"omitempty,max=10000"`
	UTBMSCode       *string          `json:"utbmsCode"       validate:"omitempty,max=10"`
	DefaultDuration *int             `json:"defaultDuration" validate:"omitempty,gte=0"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate"`
	AttorneyID      *string          `json:"attorneyId"      validate:"omitempty,uuid"`
	IsActive        *bool            `json:"isActive"`
}

type ListTablesParams struct {
	AttorneyID string
	ClientID   string
}

type ListTemplatesParams struct {
	AttorneyID string
	Search     string
	ActiveOnly bool
}

// ResolveQuery describes a prospective time entry. CaseID stands in for
// ClientID when the client is not known.
type ResolveQuery struct {
	AttorneyID string
	ClientID   string
	CaseID     string
	Activity   string
}

type ResolveResponse struct {
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	RateTableID *string         `json:"rateTableId"`
	Source      string          `json:"source"`
}
