package mock

import (
	"context"

	"github.com/fwojciec/geolens"
)

var _ geolens.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of geolens.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, content *geolens.Content) (*geolens.Report, error)
}

func (a *Analyzer) Analyze(ctx context.Context, content *geolens.Content) (*geolens.Report, error) {
	return a.AnalyzeFn(ctx, content)
}

var _ geolens.Simulator = (*Simulator)(nil)

// Simulator is a mock implementation of geolens.Simulator.
type Simulator struct {
	SimulateFn func(ctx context.Context, content *geolens.Content, claims []geolens.Claim) (*geolens.Simulation, error)
}

func (s *Simulator) Simulate(ctx context.Context, content *geolens.Content, claims []geolens.Claim) (*geolens.Simulation, error) {
	return s.SimulateFn(ctx, content, claims)
}
