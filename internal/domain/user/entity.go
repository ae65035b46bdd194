package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Full access across portals
	RoleManager Role = "manager" // Portal management access
	RoleClerk   Role = "clerk"   // Day-to-day data entry
	RolePending Role = "pending" // Provisioned but not yet assigned
)

// SessionType tags which kind of session a credential belongs to. The session
// endpoint is resolved per type ("auth-user" vs "auth-employee" in the web
// client).
const (
	SessionTypeUser     = "user"
	SessionTypeEmployee = "employee"
)

type User struct {
	ID              string
	Email           string
	FullName        string
	Contact         *string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	EmailVerified   bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if the user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

func ValidRoles() []string {
	return []string{string(RoleAdmin), string(RoleManager), string(RoleClerk), string(RolePending)}
}
