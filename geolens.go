// Package geolens analyzes web content for search engine optimization and
// generative engine optimization. It evaluates a page against two independent
// rule batteries (mechanical SEO hygiene and AI readability), optionally
// simulates how a language model would summarize the page, and produces an
// explainable report in which every missing score point is attributable to a
// named rule.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, ollama/).
package geolens
