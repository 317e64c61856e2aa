package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/geolens"
)

// DefaultAIAgents are the crawler tokens checked against robots.txt.
// These are the user agents of the major AI systems that index or
// retrieve web content.
var DefaultAIAgents = []string{
	"GPTBot",
	"ClaudeBot",
	"Claude-Web",
	"PerplexityBot",
	"Google-Extended",
	"CCBot",
}

// Ensure RobotsService implements geolens.RobotsService at compile time.
var _ geolens.RobotsService = (*RobotsService)(nil)

// RobotsService fetches a site's robots.txt and evaluates whether the
// AI crawlers are admitted.
type RobotsService struct {
	client *http.Client
	agents []string
}

// RobotsOption configures a RobotsService.
type RobotsOption func(*RobotsService)

// WithAgents overrides the crawler tokens to check.
// Defaults to DefaultAIAgents.
func WithAgents(agents []string) RobotsOption {
	return func(s *RobotsService) {
		s.agents = agents
	}
}

// NewRobotsService creates a new RobotsService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewRobotsService(client *http.Client, opts ...RobotsOption) *RobotsService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &RobotsService{
		client: client,
		agents: DefaultAIAgents,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check fetches the site's robots.txt and reports per-agent access.
// A missing robots.txt means every agent is allowed; a transport error
// is returned so the caller can distinguish "checked and open" from
// "could not check".
func (s *RobotsService) Check(ctx context.Context, siteURL string) (*geolens.Robots, error) {
	base, err := url.Parse(siteURL)
	if err != nil || base.Host == "" {
		return nil, geolens.Errorf(geolens.EINVALID, "invalid site URL %q", siteURL)
	}

	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	robots := &geolens.Robots{Source: robotsURL}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		for _, agent := range s.agents {
			robots.Agents = append(robots.Agents, geolens.AgentAccess{Agent: agent, Allowed: true})
		}
		return robots, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, robotsURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	robots.Agents = EvaluateAccess(string(body), s.agents)
	return robots, nil
}

// EvaluateAccess parses robots.txt rules and reports access for each
// agent. An agent is considered blocked when its governing group (an
// exact user-agent match, falling back to the * group) disallows the
// site root. Partial disallows leave the agent allowed; the question
// here is whether the crawler can see the content at all.
func EvaluateAccess(robotsTxt string, agents []string) []geolens.AgentAccess {
	groups := parseGroups(robotsTxt)

	out := make([]geolens.AgentAccess, 0, len(agents))
	for _, agent := range agents {
		out = append(out, geolens.AgentAccess{
			Agent:   agent,
			Allowed: allowedFor(agent, groups),
		})
	}
	return out
}

// group is one user-agent block of robots.txt, reduced to the only
// facts the access check needs.
type group struct {
	agents       []string
	rootDisallow bool
	rootAllow    bool
}

func parseGroups(robotsTxt string) []group {
	var groups []group
	inRules := false

	scanner := bufio.NewScanner(strings.NewReader(robotsTxt))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}
		field := strings.ToLower(strings.TrimSpace(line[:i]))
		value := strings.TrimSpace(line[i+1:])

		switch field {
		case "user-agent":
			// Stacked user-agent lines share one group; a user-agent
			// line after rules starts a new group.
			if len(groups) == 0 || inRules {
				groups = append(groups, group{})
				inRules = false
			}
			groups[len(groups)-1].agents = append(groups[len(groups)-1].agents, strings.ToLower(value))
		case "disallow", "allow":
			if len(groups) == 0 {
				continue
			}
			inRules = true
			if value == "/" {
				if field == "disallow" {
					groups[len(groups)-1].rootDisallow = true
				} else {
					groups[len(groups)-1].rootAllow = true
				}
			}
		default:
			if len(groups) > 0 {
				inRules = true
			}
		}
	}

	return groups
}

func allowedFor(agent string, groups []group) bool {
	lower := strings.ToLower(agent)

	disallow, allow, matched := false, false, false
	for _, g := range groups {
		for _, ga := range g.agents {
			if ga == lower {
				matched = true
				disallow = disallow || g.rootDisallow
				allow = allow || g.rootAllow
			}
		}
	}
	if !matched {
		for _, g := range groups {
			for _, ga := range g.agents {
				if ga == "*" {
					matched = true
					disallow = disallow || g.rootDisallow
					allow = allow || g.rootAllow
				}
			}
		}
	}

	if !matched {
		return true
	}
	return !disallow || allow
}
