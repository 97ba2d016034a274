// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that can sign in and submit reports.
//
// Role is a server-asserted claim: "user" for everyone who registers,
// "admin" only when promoted server-side (see the admin_email bootstrap
// in Startup). Clients never decide their own role.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`     // "user" | "admin"
	Status       string             `bson:"status" json:"status"` // "active" | "disabled"

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role claim.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Role values.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Status values.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)
