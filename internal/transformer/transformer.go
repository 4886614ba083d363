// Package transformer defines row-level stages over the typed Listing Table
// and the Chain that runs them in order.
package transformer

import "autos/internal/listing"

// Transformer is one table-to-table stage. Apply may reuse the input's
// backing storage; callers must not use the input afterwards.
type Transformer interface {
	Name() string
	Apply(listing.Table) listing.Table
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs every transformer in order.
func (c Chain) Apply(in listing.Table) listing.Table {
	return c.ApplyWith(in, nil)
}

// ApplyWith runs every transformer in order and reports each stage's row
// counts to observe when it is non-nil.
func (c Chain) ApplyWith(in listing.Table, observe func(name string, before, after int)) listing.Table {
	out := in
	for _, t := range c {
		before := out.Len()
		out = t.Apply(out)
		if observe != nil {
			observe(t.Name(), before, out.Len())
		}
	}
	return out
}
