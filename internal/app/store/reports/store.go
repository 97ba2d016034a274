// internal/app/store/reports/store.go

// Package reportstore is the repository for lost/found report documents.
// The two collections are keyed independently; every operation is
// parameterized by models.Collection and routed to the matching
// partition.
package reportstore

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a referenced id is absent from the
	// target collection. Delete never returns it: deleting an absent id
	// is success.
	ErrNotFound = errors.New("report not found")
	// ErrValidation is returned when a required field is empty. The form
	// boundary pre-validates, so a repository-level ErrValidation means a
	// caller bypassed the form.
	ErrValidation = errors.New("required field is empty")
)

// Fields is the user-supplied portion of a report. Everything else
// (id, owner, timestamps, completion) is assigned by the store.
type Fields struct {
	ItemName        string
	ItemDescription string
	Location        string
	PhoneNumber     string
	ImageRef        string
}

// Store is the report repository contract. The Mongo implementation
// backs the service; the Memory implementation backs tests.
type Store interface {
	// ListAll fetches every report in the collection. An empty
	// collection yields an empty slice, not an error.
	ListAll(ctx context.Context, col models.Collection) ([]models.Report, error)

	// ListByOwner fetches the reports whose owner_email equals owner
	// exactly (case-sensitive), store-side.
	ListByOwner(ctx context.Context, col models.Collection, owner string) ([]models.Report, error)

	// Create validates and inserts a new report, returning it with the
	// assigned id and timestamp. isCompleted starts false.
	Create(ctx context.Context, col models.Collection, f Fields, ownerEmail string) (models.Report, error)

	// SetCompleted marks a report completed. Idempotent: completing an
	// already-completed report succeeds with no observable change.
	// Returns ErrNotFound for an absent id.
	SetCompleted(ctx context.Context, col models.Collection, id primitive.ObjectID) error

	// Delete removes a report. Deleting an absent id is success.
	Delete(ctx context.Context, col models.Collection, id primitive.ObjectID) error
}

// strict strips any markup from free-text fields before they are stored;
// report text is rendered verbatim by the mobile client.
var strict = bluemonday.StrictPolicy()

// sanitize cleans and trims one user-supplied text field.
func sanitize(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// cleanFields sanitizes every user-supplied field and reports the first
// missing required one. ImageRef is optional and stored verbatim (it is
// an opaque client asset reference, never rendered as markup source).
func cleanFields(f Fields) (Fields, error) {
	f.ItemName = sanitize(f.ItemName)
	f.ItemDescription = sanitize(f.ItemDescription)
	f.Location = sanitize(f.Location)
	f.PhoneNumber = sanitize(f.PhoneNumber)
	f.ImageRef = strings.TrimSpace(f.ImageRef)

	switch {
	case f.ItemName == "":
		return Fields{}, errValidation("item name")
	case f.ItemDescription == "":
		return Fields{}, errValidation("item description")
	case f.Location == "":
		return Fields{}, errValidation("location")
	case f.PhoneNumber == "":
		return Fields{}, errValidation("phone number")
	}
	return f, nil
}

func errValidation(field string) error {
	return &validationError{field: field}
}

type validationError struct {
	field string
}

func (e *validationError) Error() string {
	return e.field + " is required"
}

func (e *validationError) Unwrap() error {
	return ErrValidation
}
