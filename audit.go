package geolens

import (
	"context"
	"time"
)

// Audit represents one site-wide analysis run. Reports created during an
// audit carry its ID so a site's pages can be listed together.
type Audit struct {
	ID          string    `json:"id"`
	SiteURL     string    `json:"siteUrl"`
	PageCount   int       `json:"pageCount"`
	AvgSEOScore int       `json:"avgSeoScore"`
	AvgGEOScore int       `json:"avgGeoScore"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// Validate returns an error if the audit contains invalid fields.
func (a *Audit) Validate() error {
	if a.SiteURL == "" {
		return Errorf(EINVALID, "audit site URL required")
	}
	return nil
}

// AuditService represents a service for managing audits.
type AuditService interface {
	// CreateAudit creates a new audit.
	CreateAudit(ctx context.Context, audit *Audit) error

	// FindAuditByID retrieves an audit by ID.
	// Returns ENOTFOUND if the audit does not exist.
	FindAuditByID(ctx context.Context, id string) (*Audit, error)

	// FindAudits retrieves audits matching the filter, newest first.
	FindAudits(ctx context.Context, filter AuditFilter) ([]*Audit, error)

	// UpdateAudit updates an audit's completion fields.
	// Returns ENOTFOUND if the audit does not exist.
	UpdateAudit(ctx context.Context, id string, upd AuditUpdate) (*Audit, error)

	// DeleteAudit permanently removes an audit and its reports.
	// Returns ENOTFOUND if the audit does not exist.
	DeleteAudit(ctx context.Context, id string) error
}

// AuditFilter represents a filter for FindAudits.
type AuditFilter struct {
	ID      *string `json:"id"`
	SiteURL *string `json:"siteUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// AuditUpdate represents fields set when an audit completes.
type AuditUpdate struct {
	PageCount   *int       `json:"pageCount"`
	AvgSEOScore *int       `json:"avgSeoScore"`
	AvgGEOScore *int       `json:"avgGeoScore"`
	CompletedAt *time.Time `json:"completedAt"`
}
