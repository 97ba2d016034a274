// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection identifies which of the two report partitions a report
// belongs to. It is fixed at creation and never changes.
type Collection string

const (
	// Lost is the partition for "I lost something" reports.
	Lost Collection = "lost"
	// Found is the partition for "I found something" reports.
	Found Collection = "found"
)

// Valid reports whether c is one of the two known collections.
func (c Collection) Valid() bool {
	return c == Lost || c == Found
}

// MongoName returns the Mongo collection name for this partition.
func (c Collection) MongoName() string {
	if c == Found {
		return "found_reports"
	}
	return "lost_reports"
}

// Report is a single lost- or found-item submission.
//
// Location is one slot regardless of partition; the API renders it as
// "locationLost" or "locationFound" depending on Collection, matching
// the document shape the mobile client expects.
type Report struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemName        string             `bson:"item_name" json:"itemName"`
	ItemNameCI      string             `bson:"item_name_ci" json:"-"` // lowercase, diacritics-stripped
	ItemDescription string             `bson:"item_description" json:"itemDescription"`
	Location        string             `bson:"location" json:"-"`
	PhoneNumber     string             `bson:"phone_number" json:"phoneNumber"`
	ImageRef        string             `bson:"image_ref,omitempty" json:"imageRef,omitempty"` // client-side asset reference, stored verbatim

	// OwnerEmail scopes the per-user history view. Set from the active
	// session at creation, immutable thereafter.
	OwnerEmail string `bson:"owner_email" json:"ownerEmail"`

	// IsCompleted only ever transitions false -> true.
	IsCompleted bool `bson:"is_completed" json:"isCompleted"`

	// Collection is not persisted; the store sets it when a report is
	// loaded so callers know how to route updates and deletes.
	Collection Collection `bson:"-" json:"collection"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
