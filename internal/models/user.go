// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleViewerClient Role = "VIEWER_CLIENT"
	RoleVideoClient  Role = "VIDEO_CLIENT"
	RoleAdsClient    Role = "ADS_CLIENT"
	RoleAdmin        Role = "ADMIN"
	RoleSuperAdmin   Role = "SUPER_ADMIN"
)

// ClientRoles are the roles allowed to sign up and use the client surface.
var ClientRoles = []Role{RoleViewerClient, RoleVideoClient, RoleAdsClient}

// AdminRoles are the roles allowed on the admin surface.
var AdminRoles = []Role{RoleAdmin, RoleSuperAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleViewerClient, RoleVideoClient, RoleAdsClient, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether r grants admin capabilities.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsClient reports whether r is a client role.
func (r Role) IsClient() bool {
	return r == RoleViewerClient || r == RoleVideoClient || r == RoleAdsClient
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects unknown roles at the API boundary.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	role := Role(raw)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", raw)
	}
	*r = role
	return nil
}

// User represents an account on the platform.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserName   string    `gorm:"uniqueIndex;size:64;not null" json:"userName"`
	Email      *string   `gorm:"uniqueIndex;size:255" json:"email,omitempty"`
	DialCode   string    `gorm:"size:8" json:"dialCode,omitempty"`
	ISOCode    string    `gorm:"size:4" json:"isoCode,omitempty"`
	Phone      string    `gorm:"size:32" json:"phone,omitempty"`
	Password   string    `gorm:"not null" json:"-"`
	Role       Role      `gorm:"size:32;not null;index" json:"role"`
	Active     bool      `gorm:"not null" json:"active"`
	IsLoggedIn bool      `gorm:"not null;default:false" json:"isLoggedIn"`
	Verified   bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
