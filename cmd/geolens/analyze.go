package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/geolens"
	geojson "github.com/fwojciec/geolens/json"
	"github.com/fwojciec/geolens/lipgloss"
	"github.com/fwojciec/geolens/markdown"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	page := &geolens.Page{Ref: c.Target, FetchedAt: time.Now().UTC()}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}
	page.HTML = html

	// The rendered fetch feeds the js-dependence probe. Its failure
	// degrades one rule, nothing else.
	if deps.Renderer != nil {
		rendered, err := deps.Renderer.Fetch(deps.Ctx, c.Target)
		if err != nil {
			deps.Logger.Warn("rendered fetch failed, analyzing the static page only", "err", err)
		} else {
			page.RenderedHTML = rendered
		}
	}

	// Same degradation contract for the AI-crawler policy check.
	if deps.Robots != nil {
		if robots, err := deps.Robots.Check(deps.Ctx, c.Target); err == nil {
			page.Robots = robots
		}
	}

	content, err := deps.Parser.Parse(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	report, err := deps.Analyzer.Analyze(deps.Ctx, content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	if err := formatReport(deps.Stdout, report, c.Format); err != nil {
		return err
	}

	if c.Save {
		rec := &geolens.ReportRecord{URL: c.Target, Report: report}
		if err := deps.Reports.CreateReport(deps.Ctx, rec); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved report %s\n", rec.ID)
	}

	if c.FailUnder > 0 {
		axis, low := "seo", report.SEO.Score
		if report.GEO.Score < low {
			axis, low = "geo", report.GEO.Score
		}
		if low < c.FailUnder {
			return fmt.Errorf("%s score %d is below the --fail-under threshold %d", axis, low, c.FailUnder)
		}
	}

	return nil
}

// formatReport renders a report in the requested output format.
func formatReport(w io.Writer, report *geolens.Report, format string) error {
	var f geolens.Formatter
	switch format {
	case "json":
		f = geojson.NewFormatter()
	case "markdown":
		f = markdown.NewFormatter()
	default:
		f = lipgloss.NewFormatter()
	}
	return f.Format(w, report)
}
