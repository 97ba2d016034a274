// internal/app/features/reports/types.go
package reports

import (
	"time"

	"github.com/projectrefind/refind/internal/app/system/contact"
	"github.com/projectrefind/refind/internal/domain/models"
)

// reportView is the JSON shape of a report. The location slot is
// rendered under a collection-specific key, matching the document shape
// the mobile client reads.
type reportView struct {
	ID              string    `json:"id"`
	ItemName        string    `json:"itemName"`
	ItemDescription string    `json:"itemDescription"`
	LocationLost    string    `json:"locationLost,omitempty"`
	LocationFound   string    `json:"locationFound,omitempty"`
	PhoneNumber     string    `json:"phoneNumber"`
	ImageRef        string    `json:"imageRef,omitempty"`
	OwnerEmail      string    `json:"ownerEmail"`
	IsCompleted     bool      `json:"isCompleted"`
	Collection      string    `json:"collection"`
	CreatedAt       time.Time `json:"createdAt"`
	ContactURL      string    `json:"contactURL,omitempty"`
}

func newReportView(r models.Report) reportView {
	v := reportView{
		ID:              r.ID.Hex(),
		ItemName:        r.ItemName,
		ItemDescription: r.ItemDescription,
		PhoneNumber:     r.PhoneNumber,
		ImageRef:        r.ImageRef,
		OwnerEmail:      r.OwnerEmail,
		IsCompleted:     r.IsCompleted,
		Collection:      string(r.Collection),
		CreatedAt:       r.CreatedAt,
	}
	if r.Collection == models.Found {
		v.LocationFound = r.Location
	} else {
		v.LocationLost = r.Location
	}
	return v
}

// newDetailView adds the wa.me contact link. An unusable phone number
// just leaves the field absent; the detail page still renders.
func newDetailView(r models.Report) reportView {
	v := newReportView(r)
	if url, err := contact.WhatsAppURL(r.PhoneNumber); err == nil {
		v.ContactURL = url
	}
	return v
}

func newReportViews(rs []models.Report) []reportView {
	out := make([]reportView, 0, len(rs))
	for _, r := range rs {
		out = append(out, newReportView(r))
	}
	return out
}
