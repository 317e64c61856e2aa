package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/geolens"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ geolens.AuditService = (*AuditService)(nil)

// AuditService implements geolens.AuditService using SQLite.
type AuditService struct {
	db *DB
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *DB) *AuditService {
	return &AuditService{db: db}
}

// CreateAudit creates a new audit.
func (s *AuditService) CreateAudit(ctx context.Context, audit *geolens.Audit) error {
	if err := audit.Validate(); err != nil {
		return err
	}

	audit.ID = uuid.New().String()
	audit.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audits (id, site_url, page_count, avg_seo_score, avg_geo_score, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL)
	`, audit.ID, audit.SiteURL, audit.PageCount, audit.AvgSEOScore, audit.AvgGEOScore,
		audit.StartedAt.Format(time.RFC3339))

	return err
}

// FindAuditByID retrieves an audit by ID.
func (s *AuditService) FindAuditByID(ctx context.Context, id string) (*geolens.Audit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, site_url, page_count, avg_seo_score, avg_geo_score, started_at, completed_at
		FROM audits
		WHERE id = ?
	`, id)

	audit, err := scanAudit(row.Scan)
	if err == sql.ErrNoRows {
		return nil, geolens.Errorf(geolens.ENOTFOUND, "audit not found")
	}
	if err != nil {
		return nil, err
	}

	return audit, nil
}

// FindAudits retrieves audits matching the filter, newest first.
func (s *AuditService) FindAudits(ctx context.Context, filter geolens.AuditFilter) ([]*geolens.Audit, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site_url, page_count, avg_seo_score, avg_geo_score, started_at, completed_at FROM audits WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SiteURL != nil {
		query.WriteString(" AND site_url = ?")
		args = append(args, *filter.SiteURL)
	}

	query.WriteString(" ORDER BY started_at DESC, id")

	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []*geolens.Audit
	for rows.Next() {
		audit, err := scanAudit(rows.Scan)
		if err != nil {
			return nil, err
		}
		audits = append(audits, audit)
	}

	return audits, rows.Err()
}

// UpdateAudit updates an audit's completion fields.
func (s *AuditService) UpdateAudit(ctx context.Context, id string, upd geolens.AuditUpdate) (*geolens.Audit, error) {
	// First check if audit exists
	audit, err := s.FindAuditByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.PageCount != nil {
		audit.PageCount = *upd.PageCount
	}
	if upd.AvgSEOScore != nil {
		audit.AvgSEOScore = *upd.AvgSEOScore
	}
	if upd.AvgGEOScore != nil {
		audit.AvgGEOScore = *upd.AvgGEOScore
	}
	if upd.CompletedAt != nil {
		audit.CompletedAt = upd.CompletedAt.UTC()
	}

	var completedAt any
	if !audit.CompletedAt.IsZero() {
		completedAt = audit.CompletedAt.Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE audits
		SET page_count = ?, avg_seo_score = ?, avg_geo_score = ?, completed_at = ?
		WHERE id = ?
	`, audit.PageCount, audit.AvgSEOScore, audit.AvgGEOScore, completedAt, id)

	if err != nil {
		return nil, err
	}

	return audit, nil
}

// DeleteAudit permanently removes an audit. Its reports go with it via
// the foreign key cascade.
func (s *AuditService) DeleteAudit(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM audits WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return geolens.Errorf(geolens.ENOTFOUND, "audit not found")
	}

	return nil
}

// scanAudit reads one audit row via the given scan function.
func scanAudit(scan func(dest ...any) error) (*geolens.Audit, error) {
	var audit geolens.Audit
	var startedAt string
	var completedAt sql.NullString

	if err := scan(&audit.ID, &audit.SiteURL, &audit.PageCount, &audit.AvgSEOScore,
		&audit.AvgGEOScore, &startedAt, &completedAt); err != nil {
		return nil, err
	}

	var err error
	audit.StartedAt, err = parseTime("started_at", startedAt)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		audit.CompletedAt, err = parseTime("completed_at", completedAt.String)
		if err != nil {
			return nil, err
		}
	}

	return &audit, nil
}
