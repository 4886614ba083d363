package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zeebo/xxh3"

	"autos/internal/datasource/file"
)

// IsURL reports whether path names an http or https resource.
func IsURL(path string) bool {
	p := strings.ToLower(path)
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// Source reads an export from a URL, decoding it like a local file.
type Source struct {
	url      string
	encoding string
	client   *Client
	hash     *xxh3.Hasher
}

// NewSource returns a Source for url. A nil client uses NewClient(Config{MaxRetries: 3}).
func NewSource(url, encodingName string, client *Client) *Source {
	if client == nil {
		client = NewClient(Config{MaxRetries: 3})
	}
	return &Source{url: url, encoding: encodingName, client: client, hash: xxh3.New()}
}

// Open downloads the export. Any status other than 200 is an error.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := file.ValidateEncoding(s.encoding); err != nil {
		return nil, fmt.Errorf("open %s: %w", s.url, err)
	}
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("open %s: unexpected status %s", s.url, resp.Status)
	}
	s.hash.Reset()
	return file.Decode(resp.Body, s.encoding, s.url, s.hash)
}

// Sum64 returns the xxh3 fingerprint of the bytes downloaded by the last Open.
func (s *Source) Sum64() uint64 { return s.hash.Sum64() }
