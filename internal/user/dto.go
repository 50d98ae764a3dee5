// AngelaMos | 2026
// dto.go

package user

type CreateUserRequest struct {
	Username  string  `json:"username"  validate:"required,min=3,max=100"`
	Email     string  `json:"email"     validate:"required,email,max=255"`
	Password  string  `json:"password"  validate:"required,min=8,max=128"`
	FirstName string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string  `json:"lastName"  validate:"required,min=1,max=100"`
	Role      string  `json:"role"      validate:"omitempty,oneof=attorney paralegal secretary admin"`
	Phone     *string `json:"phone"     validate:"omitempty,max=50"`
	BarNumber *string `json:"barNumber" validate:"omitempty,max=50"`
	IsActive  *bool   `json:"isActive"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"     validate:"omitempty,email,max=255"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty"  validate:"omitempty,min=1,max=100"`
	Role      *string `json:"role,omitempty"      validate:"omitempty,oneof=attorney paralegal secretary admin"`
	Phone     *string `json:"phone,omitempty"     validate:"omitempty,max=50"`
	BarNumber *string `json:"barNumber,omitempty" validate:"omitempty,max=50"`
	IsActive  *bool   `json:"isActive,omitempty"`
	Password  *string `json:"password,omitempty"  validate:"omitempty,min=8,max=128"`
}

type ListUsersParams struct {
	Search   string
	Role     string
	IsActive string
}
