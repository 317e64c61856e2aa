package main

import (
	"fmt"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/geo"
	"github.com/fwojciec/geolens/seo"
)

// Run executes the rules command. It prints the rule batteries with the
// weights analysis will actually use, config overrides included.
func (c *RulesCmd) Run(deps *Dependencies) error {
	var overrides map[string]int
	if deps.Config != nil {
		overrides = deps.Config.Weights
	}

	rules := geolens.ApplyWeights(seo.Rules(), overrides)
	rules = append(rules, geolens.ApplyWeights(geo.Rules(), overrides)...)

	width := 0
	for _, r := range rules {
		if len(r.ID) > width {
			width = len(r.ID)
		}
	}

	for _, r := range rules {
		fmt.Fprintf(deps.Stdout, "%-*s  %s  %2d  %s\n", width, r.ID, r.Axis, r.Weight, r.Doc)
	}

	return nil
}
