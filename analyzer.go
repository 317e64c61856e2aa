package geolens

import "context"

// Analyzer is the analysis pipeline entry point. For a given Content and
// rule-set version the report is deterministic apart from GeneratedAt.
type Analyzer interface {
	// Analyze evaluates the content and returns its report.
	// Returns EINVALID before any rule runs if the content fails
	// Validate. Rule evaluation faults become failed results and
	// simulator unavailability becomes a nil simulation; neither is
	// ever returned as an error.
	Analyze(ctx context.Context, c *Content) (*Report, error)
}

// Simulator generates the advisory AI simulation for a content. The
// simulation is additive: it never feeds back into rule scoring.
type Simulator interface {
	// Simulate summarizes the content and flags drift between the
	// summary and the source claims. Returns EUNAVAILABLE when no
	// model backend is configured or reachable.
	Simulate(ctx context.Context, c *Content, claims []Claim) (*Simulation, error)
}
