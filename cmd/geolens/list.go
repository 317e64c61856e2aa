package main

import (
	"fmt"

	"github.com/fwojciec/geolens"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if c.Audits {
		return c.listAudits(deps)
	}
	return c.listReports(deps)
}

func (c *ListCmd) listReports(deps *Dependencies) error {
	filter := geolens.ReportFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	recs, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'geolens analyze --save' to create one.")
		return nil
	}

	for _, rec := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %s  seo %d  geo %d  %s\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.SEOScore, rec.GEOScore, rec.URL)
	}

	return nil
}

func (c *ListCmd) listAudits(deps *Dependencies) error {
	filter := geolens.AuditFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.SiteURL = &c.URL
	}

	audits, err := deps.Audits.FindAudits(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	if len(audits) == 0 {
		fmt.Fprintln(deps.Stdout, "No audits found. Use 'geolens audit --save' to create one.")
		return nil
	}

	for _, a := range audits {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages  seo %d  geo %d  %s\n",
			a.ID, a.StartedAt.Format("2006-01-02 15:04"), a.PageCount, a.AvgSEOScore, a.AvgGEOScore, a.SiteURL)
	}

	return nil
}
