package main

import (
	"fmt"

	"github.com/fwojciec/geolens"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return geolens.Errorf(geolens.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); err != nil {
		if geolens.ErrorCode(err) == geolens.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'geolens list' to see stored reports.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", geolens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted report %q\n", c.ID)
	return nil
}
