// AngelaMos | 2026
// entity.go

package client

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

type Client struct {
	ID        string    `db:"id"         json:"id"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name"  json:"lastName"`
	Company   *string   `db:"company"    json:"company"`
	Email     *string   `db:"email"      json:"email"`
	Phone     *string   `db:"phone"      json:"phone"`
	Address   *string   `db:"address"    json:"address"`
	City      *string   `db:"city"       json:"city"`
	State     *string   `db:"state"      json:"state"`
	ZipCode   *string   `db:"zip_code"   json:"zipCode"`
	Notes     *string   `db:"notes"      json:"notes"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
