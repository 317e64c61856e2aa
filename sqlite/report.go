package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/geolens"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ geolens.ReportService = (*ReportService)(nil)

// ReportService implements geolens.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport stores a new report. The denormalized columns (scores,
// content hash) are derived from the report body so they can never
// disagree with it.
func (s *ReportService) CreateReport(ctx context.Context, rec *geolens.ReportRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()
	rec.SEOScore = rec.Report.SEO.Score
	rec.GEOScore = rec.Report.GEO.Score
	rec.ContentHash = rec.Report.ContentHash

	body, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	// Standalone analyze runs have no audit; store NULL so the foreign
	// key is not violated.
	var auditID any
	if rec.AuditID != "" {
		auditID = rec.AuditID
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, audit_id, url, content_hash, seo_score, geo_score, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, auditID, rec.URL, rec.ContentHash, rec.SEOScore, rec.GEOScore, string(body),
		rec.CreatedAt.Format(time.RFC3339))

	return err
}

// FindReportByID retrieves a stored report by ID.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*geolens.ReportRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, audit_id, url, content_hash, seo_score, geo_score, report, created_at
		FROM reports
		WHERE id = ?
	`, id)

	rec, err := scanReport(row.Scan)
	if err == sql.ErrNoRows {
		return nil, geolens.Errorf(geolens.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// FindReports retrieves stored reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter geolens.ReportFilter) ([]*geolens.ReportRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, audit_id, url, content_hash, seo_score, geo_score, report, created_at FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.AuditID != nil {
		query.WriteString(" AND audit_id = ?")
		args = append(args, *filter.AuditID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, id")

	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*geolens.ReportRecord
	for rows.Next() {
		rec, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteReport permanently removes a stored report.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return geolens.Errorf(geolens.ENOTFOUND, "report not found")
	}

	return nil
}

// scanReport reads one report row via the given scan function.
func scanReport(scan func(dest ...any) error) (*geolens.ReportRecord, error) {
	var rec geolens.ReportRecord
	var auditID sql.NullString
	var body, createdAt string

	if err := scan(&rec.ID, &auditID, &rec.URL, &rec.ContentHash, &rec.SEOScore,
		&rec.GEOScore, &body, &createdAt); err != nil {
		return nil, err
	}

	rec.AuditID = auditID.String

	rec.Report = &geolens.Report{}
	if err := json.Unmarshal([]byte(body), rec.Report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	var err error
	rec.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
