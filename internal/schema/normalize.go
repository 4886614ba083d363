package schema

import (
	"fmt"
	"log"
	"strings"

	"autos/internal/parser/csv"
)

// UnmappedPolicy decides what happens to a header that the contract does
// not know.
type UnmappedPolicy string

const (
	// UnmappedError fails normalization on any unknown header.
	UnmappedError UnmappedPolicy = "error"
	// UnmappedPassthrough keeps unknown headers under their original name.
	UnmappedPassthrough UnmappedPolicy = "passthrough"
)

// ParseUnmappedPolicy resolves a policy name; empty means UnmappedError.
func ParseUnmappedPolicy(s string) (UnmappedPolicy, error) {
	switch UnmappedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", UnmappedError:
		return UnmappedError, nil
	case UnmappedPassthrough:
		return UnmappedPassthrough, nil
	}
	return "", fmt.Errorf("schema: unknown unmapped policy %q (want %q or %q)", s, UnmappedError, UnmappedPassthrough)
}

// UnmappedColumnError lists headers missing from the rename mapping.
type UnmappedColumnError struct {
	Columns []string
}

func (e *UnmappedColumnError) Error() string {
	return fmt.Sprintf("schema: unmapped columns %q", e.Columns)
}

// MissingColumnError lists contract columns absent from the input, in
// contract order.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("schema: missing columns %q", e.Columns)
}

// DuplicateColumnError reports two headers that normalize to the same name.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("schema: duplicate column %q after rename", e.Column)
}

// Normalizer renames headers through a contract, drops its dropped fields and
// checks that every expected field is present.
type Normalizer struct {
	Contract Contract
	Unmapped UnmappedPolicy
}

// NewNormalizer returns a Normalizer over the Autos contract.
func NewNormalizer(policy UnmappedPolicy) Normalizer {
	return Normalizer{Contract: Autos, Unmapped: policy}
}

// Rename maps each header through the contract's header map.
func (n Normalizer) Rename(header []string) ([]string, error) {
	m := n.Contract.HeaderMap()
	out := make([]string, len(header))
	var unmapped []string
	for i, h := range header {
		if to, ok := m[h]; ok {
			out[i] = to
			continue
		}
		if n.Unmapped == UnmappedPassthrough {
			log.Printf("schema: passing through unmapped column %q", h)
			out[i] = h
			continue
		}
		unmapped = append(unmapped, h)
	}
	if len(unmapped) > 0 {
		return nil, &UnmappedColumnError{Columns: unmapped}
	}
	seen := make(map[string]struct{}, len(out))
	for _, h := range out {
		if _, dup := seen[h]; dup {
			return nil, &DuplicateColumnError{Column: h}
		}
		seen[h] = struct{}{}
	}
	return out, nil
}

// Apply renames, drops and checks t. Rows are rewritten in place.
func (n Normalizer) Apply(t csv.Table) (csv.Table, error) {
	header, err := n.Rename(t.Header)
	if err != nil {
		return csv.Table{}, err
	}

	drop := make(map[string]struct{})
	for _, d := range n.Contract.Dropped() {
		drop[d] = struct{}{}
	}
	keep := make([]int, 0, len(header))
	kept := make([]string, 0, len(header))
	for i, h := range header {
		if _, ok := drop[h]; ok {
			continue
		}
		keep = append(keep, i)
		kept = append(kept, h)
	}

	// Every contract field must be present, dropped ones included.
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, f := range n.Contract.Fields {
		if _, ok := present[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return csv.Table{}, &MissingColumnError{Columns: missing}
	}

	// keep is ascending, so each write index trails its read index.
	for r, row := range t.Rows {
		out := row[:0]
		for _, i := range keep {
			out = append(out, row[i])
		}
		t.Rows[r] = out
	}
	t.Header = kept
	return t, nil
}
