package main

import (
	"fmt"

	"github.com/fwojciec/geolens"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if err != nil {
		if geolens.ErrorCode(err) == geolens.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'geolens list' to see stored reports.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	if err := formatReport(deps.Stdout, rec.Report, c.Format); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	return nil
}
