package ports

import (
	"context"
	"io"

	"github.com/kamal-hamza/b64pack/internal/core/domain"
)

// AssetRepository defines the port for discovering and reading input files
type AssetRepository interface {
	// Root returns the input directory this repository scans
	Root() string

	// List returns the asset files under the root, sorted by relative path.
	// Hidden names and names without an extension are skipped. MimeType is
	// left empty; the caller resolves it.
	List(ctx context.Context) ([]domain.Asset, error)

	// Read returns the complete contents of an asset
	Read(ctx context.Context, asset domain.Asset) ([]byte, error)
}

// MimeResolver defines the port for extension-based MIME type lookup
type MimeResolver interface {
	// TypeByPath returns the MIME type for path, or "" when unknown
	TypeByPath(path string) string
}

// OutputWriter defines the port for committing the generated manifest
type OutputWriter interface {
	// Write calls fill with a writer for path. The file at path is replaced
	// only if fill returns nil; otherwise it is left untouched.
	Write(ctx context.Context, path string, fill func(w io.Writer) error) error
}
