package domain

import "time"

// Role enumerates the access levels attached to a profile.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSupportAgent Role = "support_agent"
	RoleRequester    Role = "requester"
)

// AgentClass reports whether the role belongs to the support-staff
// capability class. Anything outside it is treated as requester capability.
func (r Role) AgentClass() bool {
	return r == RoleAdmin || r == RoleSupportAgent
}

// UserProfile is the role-bearing identity attached to a session after
// credential verification. It is resolved once per request and passed down
// explicitly; sign-out invalidates any cached copy.
type UserProfile struct {
	ID           string
	FullName     string
	Email        string
	Role         Role
	CompanyID    *string
	PasswordHash string `json:"-"`
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAgent reports whether the profile has agent capability.
func (p *UserProfile) IsAgent() bool {
	return p != nil && p.Role.AgentClass()
}
