package main

import (
	"fmt"

	"github.com/fwojciec/geolens"
)

// ruleChange is one rule that flipped between two reports.
type ruleChange struct {
	Axis    geolens.Axis
	RuleID  string
	Message string
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	baseline, err := c.findReport(deps, c.Baseline)
	if err != nil {
		return err
	}
	current, err := c.findReport(deps, c.Current)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Comparing %s (%s) with %s (%s)\n",
		baseline.ID, baseline.CreatedAt.Format("2006-01-02 15:04"),
		current.ID, current.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(deps.Stdout, "  %s\n", baseline.URL)
	if current.URL != baseline.URL {
		fmt.Fprintf(deps.Stdout, "  %s (different URL)\n", current.URL)
	}
	fmt.Fprintln(deps.Stdout)

	fmt.Fprintf(deps.Stdout, "seo  %d -> %d  (%+d)\n",
		baseline.SEOScore, current.SEOScore, current.SEOScore-baseline.SEOScore)
	fmt.Fprintf(deps.Stdout, "geo  %d -> %d  (%+d)\n",
		baseline.GEOScore, current.GEOScore, current.GEOScore-baseline.GEOScore)

	var failing, passing []ruleChange
	for _, axes := range []struct {
		baseline geolens.AxisScore
		current  geolens.AxisScore
	}{
		{baseline.Report.SEO, current.Report.SEO},
		{baseline.Report.GEO, current.Report.GEO},
	} {
		f, p := diffRuleResults(axes.baseline, axes.current)
		failing = append(failing, f...)
		passing = append(passing, p...)
	}

	if len(failing) == 0 && len(passing) == 0 {
		fmt.Fprintln(deps.Stdout, "\nNo rule changes.")
		return nil
	}

	if len(failing) > 0 {
		fmt.Fprintln(deps.Stdout, "\nNewly failing:")
		for _, ch := range failing {
			fmt.Fprintf(deps.Stdout, "  %s  %-24s  %s\n", ch.Axis, ch.RuleID, ch.Message)
		}
	}
	if len(passing) > 0 {
		fmt.Fprintln(deps.Stdout, "\nNewly passing:")
		for _, ch := range passing {
			fmt.Fprintf(deps.Stdout, "  %s  %-24s  %s\n", ch.Axis, ch.RuleID, ch.Message)
		}
	}

	return nil
}

func (c *CompareCmd) findReport(deps *Dependencies, id string) (*geolens.ReportRecord, error) {
	rec, err := deps.Reports.FindReportByID(deps.Ctx, id)
	if err != nil {
		if geolens.ErrorCode(err) == geolens.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'geolens list' to see stored reports.\n", id)
			return nil, err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return nil, err
	}
	return rec, nil
}

// diffRuleResults walks the current battery in evaluation order and reports
// rules that flipped against the baseline. A rule absent from the baseline
// has no prior state and is never a flip.
func diffRuleResults(baseline, current geolens.AxisScore) (failing, passing []ruleChange) {
	prior := make(map[string]geolens.RuleResult, len(baseline.Results))
	for _, res := range baseline.Results {
		prior[res.RuleID] = res
	}

	for _, res := range current.Results {
		prev, ok := prior[res.RuleID]
		if !ok {
			continue
		}
		change := ruleChange{Axis: current.Axis, RuleID: res.RuleID, Message: res.Message}
		switch {
		case prev.Passed && !res.Passed:
			failing = append(failing, change)
		case !prev.Passed && res.Passed:
			passing = append(passing, change)
		}
	}
	return failing, passing
}
