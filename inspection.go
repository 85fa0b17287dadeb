package metainspect

import (
	"context"
	"time"
)

// Inspection is an archived inspection result.
//
// Archived inspections are a history log. They are never consulted to avoid
// fetching a page again.
type Inspection struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	FinalURL    string    `json:"finalUrl"`
	StatusCode  int       `json:"statusCode"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	BodyHash    string    `json:"bodyHash"`
	Result      *Result   `json:"result"`
	InspectedAt time.Time `json:"inspectedAt"`
}

// NewInspection returns an Inspection summarizing r.
func NewInspection(r *Result) *Inspection {
	ins := &Inspection{
		URL:         r.URL,
		Title:       r.Title.OrElse(""),
		Description: r.Description.OrElse(""),
		Result:      r,
	}
	if r.Response != nil {
		ins.FinalURL = r.Response.URL
		ins.StatusCode = r.Response.StatusCode
	}
	return ins
}

// Validate returns an error if the inspection contains invalid fields.
func (i *Inspection) Validate() error {
	if i.URL == "" {
		return Errorf(EINVALID, "inspection URL required")
	}
	if i.Result == nil {
		return Errorf(EINVALID, "inspection result required")
	}
	return nil
}

// InspectionService represents a service for archiving inspections.
type InspectionService interface {
	// CreateInspection archives a new inspection.
	CreateInspection(ctx context.Context, ins *Inspection) error

	// FindInspectionByID retrieves an inspection by ID.
	// Returns ENOTFOUND if the inspection does not exist.
	FindInspectionByID(ctx context.Context, id string) (*Inspection, error)

	// FindInspections retrieves inspections matching the filter, newest first.
	FindInspections(ctx context.Context, filter InspectionFilter) ([]*Inspection, error)

	// DeleteInspection permanently removes an inspection.
	// Returns ENOTFOUND if the inspection does not exist.
	DeleteInspection(ctx context.Context, id string) error
}

// InspectionFilter represents a filter for FindInspections.
type InspectionFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
