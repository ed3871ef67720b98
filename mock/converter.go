package mock

import "github.com/fwojciec/extrules"

var _ extrules.Converter = (*Converter)(nil)

// Converter is a mock implementation of extrules.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
