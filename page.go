package geolens

import "time"

// Page is the product of the fetch step: everything gathered about a
// document before parsing. Fetching happens once, before the analysis
// pipeline begins; the pipeline itself performs no I/O.
type Page struct {
	// Ref is the URL or file path the page was fetched from.
	Ref string

	// HTML is the document as served by the static fetch.
	HTML string

	// RenderedHTML is the document after JavaScript execution.
	// Empty when the rendering probe did not run.
	RenderedHTML string

	// Robots is the site's AI crawler policy. Nil when robots.txt was
	// not fetched (local files, --no-robots).
	Robots *Robots

	// FetchedAt is when the fetch completed.
	FetchedAt time.Time
}

// Robots captures a site's robots.txt policy for AI crawlers.
type Robots struct {
	// Source is the robots.txt URL the policy was read from.
	Source string `json:"source"`

	// Agents holds the per-agent access decision, in the order the
	// agents were probed.
	Agents []AgentAccess `json:"agents"`
}

// AgentAccess records whether one crawler may fetch the page.
type AgentAccess struct {
	Agent   string `json:"agent"`
	Allowed bool   `json:"allowed"`
}

// Blocked returns the agents denied access, in probe order.
func (r *Robots) Blocked() []string {
	var blocked []string
	for _, a := range r.Agents {
		if !a.Allowed {
			blocked = append(blocked, a.Agent)
		}
	}
	return blocked
}
