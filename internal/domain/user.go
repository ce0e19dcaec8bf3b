package domain

// UserRole is the role carried by a user reference
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User is a reference to a user owned by the user service
type User struct {
	ID           int64
	MobileNumber string
	Role         UserRole
	Active       bool
}

// IsAdmin returns true for facility administrators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
