package mimetype

import (
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/b64pack/internal/core/ports"
)

// defaultTypes is a fixed extension table. The platform MIME database is not
// consulted so output is identical on every machine.
var defaultTypes = map[string]string{
	// Images
	".apng": "image/apng",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".ico":  "image/vnd.microsoft.icon",
	".jpe":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",

	// Audio
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mid":  "audio/midi",
	".midi": "audio/midi",
	".mp3":  "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/x-wav",
	".weba": "audio/webm",

	// Video
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".ogv":  "video/ogg",
	".webm": "video/webm",

	// Fonts
	".otf":   "font/otf",
	".ttf":   "font/ttf",
	".woff":  "font/woff",
	".woff2": "font/woff2",

	// Text and data
	".css":  "text/css",
	".csv":  "text/csv",
	".htm":  "text/html",
	".html": "text/html",
	".js":   "text/javascript",
	".mjs":  "text/javascript",
	".json": "application/json",
	".txt":  "text/plain",
	".xml":  "text/xml",

	// Binary and models
	".bin":  "application/octet-stream",
	".glb":  "model/gltf-binary",
	".gltf": "model/gltf+json",
	".pdf":  "application/pdf",
	".wasm": "application/wasm",
	".zip":  "application/zip",
}

// Resolver maps file extensions to MIME types
type Resolver struct {
	types map[string]string
}

// NewResolver creates a resolver seeded with the built-in table. Overrides
// replace or extend it; keys may be given with or without the leading dot.
func NewResolver(overrides map[string]string) *Resolver {
	types := make(map[string]string, len(defaultTypes)+len(overrides))
	for ext, t := range defaultTypes {
		types[ext] = t
	}
	for ext, t := range overrides {
		types[normalizeExt(ext)] = strings.TrimSpace(t)
	}
	return &Resolver{types: types}
}

// Ensure it implements the interface
var _ ports.MimeResolver = (*Resolver)(nil)

// TypeByPath returns the MIME type for path's extension (case-insensitive),
// or "" when the extension is unknown
func (r *Resolver) TypeByPath(path string) string {
	return r.types[strings.ToLower(filepath.Ext(path))]
}

// TypeByExtension looks up ext, with or without the leading dot
func (r *Resolver) TypeByExtension(ext string) string {
	return r.types[normalizeExt(ext)]
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
