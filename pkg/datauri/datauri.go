package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	scheme = "data:"
	marker = ";base64,"
)

// ErrMalformed is returned when a string is not a base64 data URI
var ErrMalformed = errors.New("malformed data URI")

// EncodeToString builds "data:<mimeType>;base64,<payload>".
// An empty mimeType yields "data:;base64,...".
func EncodeToString(mimeType string, data []byte) string {
	var b strings.Builder
	b.Grow(len(scheme) + len(mimeType) + len(marker) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString(scheme)
	b.WriteString(mimeType)
	b.WriteString(marker)
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// Decode splits a base64 data URI into its MIME type and decoded payload
func Decode(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, scheme) {
		return "", nil, fmt.Errorf("%w: missing %q prefix", ErrMalformed, scheme)
	}

	rest := uri[len(scheme):]
	idx := strings.Index(rest, marker)
	if idx < 0 {
		return "", nil, fmt.Errorf("%w: missing %q marker", ErrMalformed, marker)
	}

	mimeType := rest[:idx]
	data, err := base64.StdEncoding.DecodeString(rest[idx+len(marker):])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return mimeType, data, nil
}

// EncodedLen returns the length of the data URI for a payload of n bytes
func EncodedLen(mimeType string, n int) int {
	return len(scheme) + len(mimeType) + len(marker) + base64.StdEncoding.EncodedLen(n)
}
