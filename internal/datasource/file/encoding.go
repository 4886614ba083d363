package file

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var (
	// ErrUnknownEncoding is returned when an encoding identifier cannot be
	// resolved.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrDecode is returned when input bytes are invalid for the declared
	// encoding.
	ErrDecode = errors.New("decode input")
)

// aliases maps folded identifiers (lowercase, no '-', '_' or spaces) to the
// encodings listing exports are commonly published in. A nil value marks
// UTF-8, which is validated rather than decoded.
var aliases = map[string]encoding.Encoding{
	"latin1":      charmap.ISO8859_1,
	"l1":          charmap.ISO8859_1,
	"iso88591":    charmap.ISO8859_1,
	"cp1252":      charmap.Windows1252,
	"windows1252": charmap.Windows1252,
	"utf8":        nil,
}

// fold lowercases name and removes separators so "Latin-1" and "latin_1"
// resolve alike.
func fold(name string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

// decoderFor returns a transformer producing UTF-8 from the named encoding.
// UTF-8 input is passed through a validator so malformed bytes fail the read
// instead of being replaced.
func decoderFor(name string) (transform.Transformer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownEncoding)
	}
	if enc, ok := aliases[fold(name)]; ok {
		if enc == nil {
			return encoding.UTF8Validator, nil
		}
		return enc.NewDecoder(), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc.NewDecoder(), nil
}

// ValidateEncoding reports whether name resolves to a supported encoding.
func ValidateEncoding(name string) error {
	_, err := decoderFor(name)
	return err
}
