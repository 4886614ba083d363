// Package file implements a local filesystem-backed data source that decodes
// the file's declared text encoding into UTF-8.
package file

import (
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Local is a filesystem data source bound to one path and encoding.
// A Local is not safe for concurrent Opens; it fingerprints the bytes read
// through the most recent Open.
type Local struct {
	path     string
	encoding string
	hash     *xxh3.Hasher
}

// NewLocal returns a Local data source for path decoded from encodingName
// (for example "Latin-1" or "utf-8").
func NewLocal(path, encodingName string) *Local {
	return &Local{path: path, encoding: encodingName, hash: xxh3.New()}
}

// Path returns the configured filesystem path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path and returns a reader yielding UTF-8.
//
// Behavior:
//   - A canceled context fails immediately without touching the filesystem.
//   - An unresolvable encoding fails with ErrUnknownEncoding before the file
//     is opened.
//   - Filesystem errors are wrapped with the path and still satisfy
//     errors.Is(err, os.ErrNotExist) and friends.
//   - Bytes invalid for the encoding surface from Read as ErrDecode.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if err := ValidateEncoding(l.encoding); err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	l.hash.Reset()
	return Decode(f, l.encoding, l.path, l.hash)
}

// Sum64 returns the xxh3 fingerprint of the raw bytes read so far through
// the last Open.
func (l *Local) Sum64() uint64 { return l.hash.Sum64() }

// Decode wraps rc so reads yield UTF-8 decoded from encodingName. Raw bytes
// are also written to h when h is non-nil. label names the input in errors.
// Closing the result closes rc; on error rc is closed before returning.
func Decode(rc io.ReadCloser, encodingName, label string, h hash.Hash64) (io.ReadCloser, error) {
	dec, err := decoderFor(encodingName)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("open %s: %w", label, err)
	}
	var src io.Reader = rc
	if h != nil {
		src = io.TeeReader(rc, h)
	}
	return &decoded{r: transform.NewReader(src, dec), c: rc, label: label}, nil
}

// decoded couples the decoding reader with the stream it must close.
type decoded struct {
	r     io.Reader
	c     io.Closer
	label string
}

func (d *decoded) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if err != nil && err != io.EOF {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return n, fmt.Errorf("%w: %s: %w", ErrDecode, d.label, err)
		}
		return n, fmt.Errorf("read %s: %w", d.label, err)
	}
	return n, err
}

func (d *decoded) Close() error { return d.c.Close() }
