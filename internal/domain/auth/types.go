package auth

// Package auth contains domain-level types for authentication and
// authorization. It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleDeveloper     Role = "Developer"
	RoleAdministrador Role = "Administrador"
	RoleStaff         Role = "Staff"
)

// Permission names a single flag in a PermissionSet.
type Permission string

const (
	PermManageStaff       Permission = "manageStaff"
	PermPublishGame       Permission = "publishGame"
	PermEditGame          Permission = "editGame"
	PermRemoveGame        Permission = "removeGame"
	PermManageMaintenance Permission = "manageMaintenance"
)

// Permissions returns all known permission names.
func Permissions() []Permission {
	return []Permission{
		PermManageStaff,
		PermPublishGame,
		PermEditGame,
		PermRemoveGame,
		PermManageMaintenance,
	}
}

// PermissionSet is the fixed record of capabilities granted to a role.
type PermissionSet struct {
	ManageStaff       bool `json:"manageStaff"`
	PublishGame       bool `json:"publishGame"`
	EditGame          bool `json:"editGame"`
	RemoveGame        bool `json:"removeGame"`
	ManageMaintenance bool `json:"manageMaintenance"`
}

// Has reports whether the named permission flag is set.
func (p PermissionSet) Has(name Permission) bool {
	switch name {
	case PermManageStaff:
		return p.ManageStaff
	case PermPublishGame:
		return p.PublishGame
	case PermEditGame:
		return p.EditGame
	case PermRemoveGame:
		return p.RemoveGame
	case PermManageMaintenance:
		return p.ManageMaintenance
	default:
		return false
	}
}

// User is the identity carried inside a session token.
type User struct {
	SteamID     string `json:"steamId"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
}

// Viewer is the per-request authorization view consumed by every route gate.
// It is derived, never persisted.
type Viewer struct {
	Authenticated bool          `json:"authenticated"`
	IsAdmin       bool          `json:"isAdmin"`
	AdminError    string        `json:"adminError,omitempty"`
	Role          Role          `json:"role,omitempty"`
	Permissions   PermissionSet `json:"permissions"`
	User          *User         `json:"user"`
}

// AnonymousViewer returns the canonical unauthenticated Viewer with
// zero permissions.
func AnonymousViewer() Viewer {
	return Viewer{}
}

// HasPermission reports whether the viewer may perform the named operation.
// Unauthenticated or non-admin viewers never hold permissions, and an
// unresolved admin status ("can't determine") also denies.
func (v Viewer) HasPermission(name Permission) bool {
	return v.Authenticated && v.IsAdmin && v.Permissions.Has(name)
}

// AdminRecord is a row in the staff admin directory.
type AdminRecord struct {
	SteamID   string    `json:"steam_id"`
	StaffName string    `json:"staff_name"`
	StaffRole Role      `json:"staff_role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminRecordPatch carries partial updates to an AdminRecord.
// Nil fields are left untouched.
type AdminRecordPatch struct {
	StaffName *string
	StaffRole *Role
}

// SeedAdmin is a bootstrap directory entry from static configuration.
type SeedAdmin struct {
	SteamID string
	Role    Role
}

// SteamProfile is the public profile shape returned by the profile provider.
// Cached opportunistically; absence never affects correctness.
type SteamProfile struct {
	SteamID     string `json:"steamId"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	ProfileURL  string `json:"profileUrl"`
}

// SessionClaims is the payload of the long-lived session token.
type SessionClaims struct {
	SteamID     string `json:"sid"`
	DisplayName string `json:"name"`
	Avatar      string `json:"avatar,omitempty"`
	IssuedAt    int64  `json:"iat"`
	ExpiresAt   int64  `json:"exp"`
}

// Stamp records the validity window on the claims.
func (c *SessionClaims) Stamp(issuedAt, expiresAt time.Time) {
	c.IssuedAt = issuedAt.Unix()
	c.ExpiresAt = expiresAt.Unix()
}

// Expiry returns the absolute expiry of the claims.
func (c *SessionClaims) Expiry() time.Time { return time.Unix(c.ExpiresAt, 0) }

// User converts the claims into the identity they assert.
func (c *SessionClaims) User() User {
	return User{SteamID: c.SteamID, DisplayName: c.DisplayName, Avatar: c.Avatar}
}

// StateClaims is the payload of the short-lived login state token. It exists
// only to bind an OpenID callback to the request that initiated it.
type StateClaims struct {
	Nonce     string `json:"nonce"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Stamp records the validity window on the claims.
func (c *StateClaims) Stamp(issuedAt, expiresAt time.Time) {
	c.IssuedAt = issuedAt.Unix()
	c.ExpiresAt = expiresAt.Unix()
}

// Expiry returns the absolute expiry of the claims.
func (c *StateClaims) Expiry() time.Time { return time.Unix(c.ExpiresAt, 0) }
