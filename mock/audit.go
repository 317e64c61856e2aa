package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.AuditService = (*AuditService)(nil)

// AuditService is a mock implementation of geolens.AuditService.
type AuditService struct {
	CreateAuditFn   func(ctx context.Context, audit *geolens.Audit) error
	FindAuditByIDFn func(ctx context.Context, id string) (*geolens.Audit, error)
	FindAuditsFn    func(ctx context.Context, filter geolens.AuditFilter) ([]*geolens.Audit, error)
	UpdateAuditFn   func(ctx context.Context, id string, upd geolens.AuditUpdate) (*geolens.Audit, error)
	DeleteAuditFn   func(ctx context.Context, id string) error
}

func (s *AuditService) CreateAudit(ctx context.Context, audit *geolens.Audit) error {
	return s.CreateAuditFn(ctx, audit)
}

func (s *AuditService) FindAuditByID(ctx context.Context, id string) (*geolens.Audit, error) {
	return s.FindAuditByIDFn(ctx, id)
}

func (s *AuditService) FindAudits(ctx context.Context, filter geolens.AuditFilter) ([]*geolens.Audit, error) {
	return s.FindAuditsFn(ctx, filter)
}

func (s *AuditService) UpdateAudit(ctx context.Context, id string, upd geolens.AuditUpdate) (*geolens.Audit, error) {
	return s.UpdateAuditFn(ctx, id, upd)
}

func (s *AuditService) DeleteAudit(ctx context.Context, id string) error {
	return s.DeleteAuditFn(ctx, id)
}
