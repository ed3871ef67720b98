package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	for _, name := range deps.Generators.Names() {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
