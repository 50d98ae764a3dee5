// AngelaMos | 2026
// entity.go

package rates

import (
	"time"

	"github.com/shopspring/decimal"
)

type RateTable struct {
	ID            string          `db:"id"             json:"id"`
	Name          string          `db:"name"           json:"name"`
	AttorneyID    *string         `db:"attorney_id"    json:"attorneyId"`
	ClientID      *string         `db:"client_id"      json:"clientId"`
	ActivityType  *string         `db:"activity_type"  json:"activityType"`
	HourlyRate    decimal.Decimal `db:"hourly_rate"    json:"hourlyRate"`
	IsDefault     bool            `db:"is_default"     json:"isDefault"`
	EffectiveFrom time.Time       `db:"effective_from" json:"effectiveFrom"`
	CreatedAt     time.Time       `db:"created_at"     json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at"     json:"updatedAt"`
}

// specificity ranks how narrowly a rate row applies to a lookup. Zero
// means the row does not apply.
func (rt *RateTable) specificity(q ResolveQuery) int {
	if rt.AttorneyID != nil && *rt.AttorneyID != q.AttorneyID {
		return 0
	}
	if rt.ClientID != nil && *rt.ClientID != q.ClientID {
		return 0
	}
	if rt.ActivityType != nil && *rt.ActivityType != q.Activity {
		return 0
	}

	attorney := rt.AttorneyID != nil
	client := rt.ClientID != nil
	activity := rt.ActivityType != nil

	switch {
	case attorney && client && activity:
		return 8
	case attorney && client:
		return 7
	case client && activity:
		return 6
	case attorney && activity:
		return 5
	case client:
		return 4
	case attorney:
		return 3
	case activity:
		return 2
	case rt.IsDefault:
		return 1
	default:
		return 0
	}
}

type ActivityTemplate struct {
	ID              string           `db:"id"               json:"id"`
	Name            string           `db:"name"             json:"name"`
	Activity        string           `db:"activity"         json:"activity"`
	Description     *string          `db:"description"      json:"description"`
	UTBMSCode       *string          `db:"utbms_code"       json:"utbmsCode"`
	DefaultDuration *int             `db:"default_duration" json:"defaultDuration"`
	HourlyRate      *decimal.Decimal `db:"hourly_rate"      json:"hourlyRate"`
	AttorneyID      *string          `db:"attorney_id"      json:"attorneyId"`
	IsActive        bool             `db:"is_active"        json:"isActive"`
	CreatedAt       time.Time        `db:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time        `db:"updated_at"       json:"updatedAt"`
}
