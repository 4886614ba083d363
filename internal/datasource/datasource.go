// Package datasource defines where raw listing bytes come from.
package datasource

import (
	"context"
	"io"
)

// Source opens a stream of UTF-8 encoded input.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
