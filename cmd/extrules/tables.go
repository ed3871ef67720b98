package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/extrules"
)

// Run executes the tables command. Rows are printed as arrays of cells.
func (c *TablesCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.File, err)
	}

	cfg := extrules.TableConfig{Header: c.Header, AllTables: c.All}
	rows, err := extrules.ParseTables(string(data), cfg, func(line string) ([]string, error) {
		return extrules.SplitRow(line), nil
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", extrules.ErrorMessage(err))
		return err
	}
	if rows == nil {
		rows = [][]string{}
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
