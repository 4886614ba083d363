// Package ints parses integers out of text fields that carry formatting
// noise such as currency symbols, thousands separators and unit suffixes.
package ints

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotInteger is returned when text left over after stripping is not a
// base-10 integer.
var ErrNotInteger = errors.New("not an integer")

// Clean removes every occurrence of each strip token from s, in order, and
// parses what remains with strconv.Atoi. There is no fallback value: any
// residual character is an error.
func Clean(s string, strip ...string) (int, error) {
	rest := s
	for _, tok := range strip {
		if tok != "" {
			rest = strings.ReplaceAll(rest, tok, "")
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%q: %w", s, strconv.ErrRange)
		}
		return 0, fmt.Errorf("%q: %w (residue %q)", s, ErrNotInteger, rest)
	}
	return n, nil
}

// Stripper binds a fixed set of strip tokens, so one cleaning rule can be
// named and reused per column.
type Stripper []string

// Parse applies Clean with the bound tokens.
func (st Stripper) Parse(s string) (int, error) { return Clean(s, st...) }
