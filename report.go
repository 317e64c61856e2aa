package geolens

import (
	"context"
	"time"
)

// Report is the immutable result of one analysis run. It is created once
// by the pipeline and consumed by formatters only. SEO and GEO scores are
// always reported separately; the pipeline never blends them into a
// single number.
type Report struct {
	// ContentRef identifies the analyzed content.
	ContentRef string `json:"contentRef"`

	// ContentHash is a hash of the raw HTML, used to detect unchanged
	// content between runs. Empty when the raw HTML was unavailable.
	ContentHash string `json:"contentHash,omitempty"`

	// SEO is the mechanical search hygiene score.
	SEO AxisScore `json:"seo"`

	// GEO is the AI readability score.
	GEO AxisScore `json:"geo"`

	// AISimulation is the optional simulator output. Nil when the
	// simulator is disabled, unavailable, or timed out; its absence
	// never changes the axis scores.
	AISimulation *Simulation `json:"aiSimulation,omitempty"`

	// GeneratedAt is the report creation time.
	GeneratedAt time.Time `json:"generatedAt"`
}

// Simulation is the AI simulator's advisory output.
type Simulation struct {
	// Summary is the model-generated summary of the main text.
	Summary string `json:"summary"`

	// DriftFlags are mismatches between the summary and the source
	// claims. Empty means the summary tracked the source.
	DriftFlags []DriftFlag `json:"driftFlags"`
}

// Drift flag kinds.
const (
	// DriftUnsupported marks a figure in the summary that the source
	// never asserts.
	DriftUnsupported = "unsupported"

	// DriftOmitted marks a prominent source claim the summary dropped.
	DriftOmitted = "omitted"

	// DriftContradicted marks a source figure the summary quotes with a
	// different value.
	DriftContradicted = "contradicted"
)

// DriftFlag records one mismatch between summary and source.
type DriftFlag struct {
	Kind   string `json:"kind"`
	Claim  string `json:"claim"`
	Detail string `json:"detail,omitempty"`
}

// ReportRecord is a stored report with its history metadata.
type ReportRecord struct {
	ID          string    `json:"id"`
	AuditID     string    `json:"auditId,omitempty"`
	URL         string    `json:"url"`
	ContentHash string    `json:"contentHash"`
	SEOScore    int       `json:"seoScore"`
	GEOScore    int       `json:"geoScore"`
	Report      *Report   `json:"report"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ReportRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "report URL required")
	}
	if r.Report == nil {
		return Errorf(EINVALID, "report body required")
	}
	return nil
}

// ReportService represents a service for managing stored reports.
type ReportService interface {
	// CreateReport stores a new report.
	CreateReport(ctx context.Context, rec *ReportRecord) error

	// FindReportByID retrieves a stored report by ID.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*ReportRecord, error)

	// FindReports retrieves stored reports matching the filter,
	// newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*ReportRecord, error)

	// DeleteReport permanently removes a stored report.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID          *string `json:"id"`
	AuditID     *string `json:"auditId"`
	URL         *string `json:"url"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
