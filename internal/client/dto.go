// AngelaMos | 2026
// dto.go

package client

type CreateClientRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string  `json:"lastName"  validate:"required,min=1,max=100"`
	Company   *string `json:"company"   validate:"omitempty,max=200"`
	Email     *string `json:"email"     validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone"     validate:"omitempty,max=50"`
	Address   *string `json:"address"   validate:"omitempty,max=255"`
	City      *string `json:"city"      validate:"omitempty,max=100"`
	State     *string `json:"state"     validate:"omitempty,max=100"`
	ZipCode   *string `json:"zipCode"   validate:"omitempty,max=20"`
	Notes     *string `json:"notes"     validate:"omitempty,max=10000"`
	Status    string  `json:"status"    validate:"omitempty,oneof=active inactive archived"`
}

type UpdateClientRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1,max=100"`
	Company   *string `json:"company"   validate:"omitempty,max=200"`
	Email     *string `json:"email"     validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone"     validate:"omitempty,max=50"`
	Address   *string `json:"address"   validate:"omitempty,max=255"`
	City      *string `json:"city"      validate:"omitempty,max=100"`
	State     *string `json:"state"     validate:"omitempty,max=100"`
	ZipCode   *string `json:"zipCode"   validate:"omitempty,max=20"`
	Notes     *string `json:"notes"     validate:"omitempty,max=10000"`
	Status    *string `json:"status"    validate:"omitempty,oneof=active inactive archived"`
}

type ListParams struct {
	Search string
	Status string
}
