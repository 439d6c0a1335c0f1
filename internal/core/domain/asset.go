package domain

import (
	"path/filepath"
	"strings"
)

// Asset represents one file discovered under the input directory
type Asset struct {
	Key        string // Manifest key (normalized relative path, plus any key prefix)
	RelPath    string // Path relative to the input root, forward slashes
	SourcePath string // Absolute path on disk
	MimeType   string // Empty when the extension is unknown
	Size       int64
}

// Ext returns the lowercased file extension including the dot
func (a Asset) Ext() string {
	return strings.ToLower(filepath.Ext(a.RelPath))
}

// NormalizePath converts OS-specific separators to '/' so manifest keys are
// identical on every platform
func NormalizePath(path string) string {
	path = filepath.ToSlash(path)
	return strings.ReplaceAll(path, "\\", "/")
}

// IsHidden reports whether a file or directory name starts with a dot
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// IsAssetName reports whether a base name is bundled: it must not be hidden
// and must contain a dot after its first character ("a.png", "x.tar.gz"),
// so names like "LICENSE" or ".gitkeep" are skipped.
func IsAssetName(name string) bool {
	if name == "" || IsHidden(name) {
		return false
	}
	return strings.Contains(name[1:], ".")
}
