package main

import (
	"fmt"

	"github.com/fwojciec/extrules"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	g, err := deps.Generators.Get(c.Tool)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", extrules.ErrorMessage(err))
		return err
	}

	rules, err := g.Generate(deps.Ctx)
	if err != nil {
		return fmt.Errorf("generate %s rules: %w", c.Tool, err)
	}

	out := c.Out
	if out == "" {
		out = c.Tool + ".json"
	}
	if err := deps.Writer.WriteRules(deps.Ctx, out, rules); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", extrules.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d %s rules to %s\n", len(rules), c.Tool, out)
	return nil
}
