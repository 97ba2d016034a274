// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the display record shown on the profile screen: the
// student's name and NIM (student identification number). It is keyed
// by the owning user's id, one document per user.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    primitive.ObjectID `bson:"user_id" json:"-"`
	Nama      string             `bson:"nama" json:"nama"`
	NIM       string             `bson:"nim" json:"nim"`
	CreatedAt time.Time          `bson:"created_at" json:"-"`
	UpdatedAt time.Time          `bson:"updated_at" json:"-"`
}
