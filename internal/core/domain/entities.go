package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

// Principal is the authenticated identity resolved by the API layer.
// The core uses it only for ownership checks; authentication itself
// happens in the HTTP middleware.
type Principal struct {
	UserID uint
	Role   Role
}

// IsStaff reports whether the principal may use the administrative paths.
func (p Principal) IsStaff() bool {
	return p.Role == RoleAdmin || p.Role == RoleEmployee
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
