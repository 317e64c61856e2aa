// Package analyze wires the rule batteries, the optional AI simulator,
// and report assembly into the analysis pipeline.
package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/geo"
	"github.com/fwojciec/geolens/seo"
	"golang.org/x/sync/errgroup"
)

// DefaultSimulatorTimeout bounds how long a single analysis waits for
// the summarization model before proceeding without a simulation.
const DefaultSimulatorTimeout = 30 * time.Second

// Ensure Pipeline implements geolens.Analyzer at compile time.
var _ geolens.Analyzer = (*Pipeline)(nil)

// Pipeline runs content through both rule batteries and optionally
// through the AI simulator, then assembles the report. The zero value
// analyzes with the full default batteries and no simulator.
type Pipeline struct {
	// SEORules and GEORules override the default batteries, which is how
	// configured weight overrides reach the pipeline (geolens.ApplyWeights
	// at wiring time). Nil means the full default battery.
	SEORules []geolens.Rule
	GEORules []geolens.Rule

	// Simulator is optional. Simulation failures and timeouts are
	// absorbed: the report ships without a simulation and the scores are
	// identical to a run that never had a simulator.
	Simulator        geolens.Simulator
	SimulatorTimeout time.Duration
}

// Analyze scores the content on both axes. Rule evaluation is pure and
// deterministic; two calls over the same content differ only in their
// GeneratedAt stamp.
func (p *Pipeline) Analyze(ctx context.Context, content *geolens.Content) (*geolens.Report, error) {
	if content == nil {
		return nil, geolens.Errorf(geolens.EINVALID, "content required")
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}

	seoRules := p.SEORules
	if seoRules == nil {
		seoRules = seo.Rules()
	}
	geoRules := p.GEORules
	if geoRules == nil {
		geoRules = geo.Rules()
	}

	var (
		seoResults []geolens.RuleResult
		geoResults []geolens.RuleResult
		simulation *geolens.Simulation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		seoResults = geolens.EvaluateRules(seoRules, content)
		return nil
	})
	g.Go(func() error {
		geoResults = geolens.EvaluateRules(geoRules, content)
		return nil
	})
	if p.Simulator != nil {
		g.Go(func() error {
			simulation = p.simulate(gctx, content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &geolens.Report{
		ContentRef:   content.Ref,
		ContentHash:  ContentHash(content),
		SEO:          geolens.NewAxisScore(geolens.AxisSEO, seoRules, seoResults),
		GEO:          geolens.NewAxisScore(geolens.AxisGEO, geoRules, geoResults),
		AISimulation: simulation,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

func (p *Pipeline) simulate(ctx context.Context, content *geolens.Content) *geolens.Simulation {
	timeout := p.SimulatorTimeout
	if timeout <= 0 {
		timeout = DefaultSimulatorTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	claims := geolens.ExtractClaims(content.MainText)
	sim, err := p.Simulator.Simulate(ctx, content, claims)
	if err != nil {
		return nil
	}
	return sim
}

// ContentHash fingerprints the analyzed content with xxhash: the raw
// fetched HTML when the content came from a fetch, the main text
// otherwise. Re-running over an unchanged page yields the same hash,
// which is what the audit's skip-unchanged pass keys on.
func ContentHash(content *geolens.Content) string {
	src := content.RawHTML
	if src == "" {
		src = content.MainText
	}
	return fmt.Sprintf("%x", xxhash.Sum64String(src))
}
