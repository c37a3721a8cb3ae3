package domain

import "time"

type User struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	Role         UserRole   `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	SuspendedAt  *time.Time `json:"suspended_at,omitempty" db:"suspended_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

type UserRole string

const (
	RoleMember    UserRole = "member"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleMember, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// Capability is what a caller actually needs; authorization checks go
// through Can instead of comparing role strings at call sites.
type Capability string

const (
	CapModerateContent Capability = "moderate_content"
	CapManageAccounts  Capability = "manage_accounts"
	CapViewAuditLog    Capability = "view_audit_log"
)

var roleCapabilities = map[UserRole]map[Capability]bool{
	RoleMember: {},
	RoleModerator: {
		CapModerateContent: true,
		CapViewAuditLog:    true,
	},
	RoleAdmin: {
		CapModerateContent: true,
		CapManageAccounts:  true,
		CapViewAuditLog:    true,
	},
}

func (r UserRole) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
