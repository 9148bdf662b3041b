// AngelaMos | 2026
// dto.go

package user

type ListUsersParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string
}

// UpdateUserRequest carries the mutable profile fields. Values arrive as
// multipart form fields alongside an optional avatar file.
type UpdateUserRequest struct {
	FirstName string `json:"firstName" validate:"omitempty,min=1,max=150"`
	LastName  string `json:"lastName"  validate:"omitempty,min=1,max=150"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Phone     string `json:"phone"     validate:"omitempty,bd_phone"`
	Address   string `json:"address"   validate:"omitempty,max=500"`
	Role      string `json:"role"      validate:"omitempty,oneof=USER ADMIN SELLER"`
}
