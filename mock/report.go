package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of geolens.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, rec *geolens.ReportRecord) error
	FindReportByIDFn func(ctx context.Context, id string) (*geolens.ReportRecord, error)
	FindReportsFn    func(ctx context.Context, filter geolens.ReportFilter) ([]*geolens.ReportRecord, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *ReportService) CreateReport(ctx context.Context, rec *geolens.ReportRecord) error {
	return s.CreateReportFn(ctx, rec)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*geolens.ReportRecord, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter geolens.ReportFilter) ([]*geolens.ReportRecord, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	return s.DeleteReportFn(ctx, id)
}
