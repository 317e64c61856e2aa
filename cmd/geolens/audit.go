package main

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/crawl"
	"github.com/fwojciec/geolens/fs"
	"github.com/fwojciec/geolens/markdown"
)

// Run executes the audit command.
func (c *AuditCmd) Run(deps *Dependencies) error {
	filter, err := buildURLFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	if c.SkipUnchanged && !c.Save {
		err := geolens.Errorf(geolens.EINVALID, "--skip-unchanged compares pages against stored reports and needs --save")
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s %s  seo %d  geo %d\n",
				progressLabel(event), crawl.TruncateURL(event.URL, 60), event.SEO, event.GEO)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  %s %s  unchanged\n",
				progressLabel(event), crawl.TruncateURL(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after the audit completes
		}
	}

	result, err := deps.Auditor.AuditSite(deps.Ctx, c.SiteURL, filter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	if c.Out != "" {
		if err := writeReports(deps, result.Reports, c.Out); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing reports: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "  Wrote %d reports to %s\n", len(result.Reports), c.Out)
	}

	fmt.Fprintf(deps.Stdout, "Analyzed %d pages, skipped %d, failed %d (%s, %s)\n",
		result.Analyzed, result.Skipped, result.Failed,
		crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	fmt.Fprintf(deps.Stdout, "Average scores: seo %d, geo %d\n", result.AvgSEO, result.AvgGEO)
	if result.AuditID != "" {
		fmt.Fprintf(deps.Stdout, "Saved audit %s\n", result.AuditID)
	}

	return nil
}

// progressLabel formats the completion counter. Link-walk audits have no
// URL total up front, so the label degrades to a bare count.
func progressLabel(event crawl.ProgressEvent) string {
	if event.Total > 0 {
		return fmt.Sprintf("[%d/%d]", event.Completed, event.Total)
	}
	return fmt.Sprintf("[%d]", event.Completed)
}

// buildURLFilter compiles include and exclude patterns, validating the
// regexes before any network work starts.
func buildURLFilter(include, exclude []string) (*geolens.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	filter := &geolens.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, geolens.Errorf(geolens.EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, geolens.Errorf(geolens.EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// writeReports renders every report into a staged directory and commits
// it atomically, so a failed run never leaves a half-written output dir.
func writeReports(deps *Dependencies, reports []*geolens.Report, out string) error {
	store := fs.NewReportStore(filepath.Dir(out), filepath.Base(out), markdown.NewFormatter())
	for _, report := range reports {
		if err := store.Save(deps.Ctx, report); err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}
