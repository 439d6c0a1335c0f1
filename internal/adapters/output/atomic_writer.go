package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/b64pack/internal/core/domain"
	"github.com/kamal-hamza/b64pack/internal/core/ports"
)

// AtomicFileWriter writes into a temporary file next to the destination and
// renames it into place once the content is complete
type AtomicFileWriter struct {
	perm os.FileMode
}

// NewAtomicFileWriter creates a writer that commits files with mode perm
func NewAtomicFileWriter(perm os.FileMode) *AtomicFileWriter {
	if perm == 0 {
		perm = 0644
	}
	return &AtomicFileWriter{perm: perm}
}

// Ensure it implements the interface
var _ ports.OutputWriter = (*AtomicFileWriter)(nil)

// Write streams fill's output to a temp file and renames it over path.
// If fill, the flush, or the rename fails, path is left as it was and the
// temp file is removed. Errors returned by fill are passed through unchanged.
func (w *AtomicFileWriter) Write(ctx context.Context, path string, fill func(out io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.OutputWriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &domain.OutputWriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := fill(&errorTaggingWriter{w: tmp, path: path}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return &domain.OutputWriteError{Path: path, Err: fmt.Errorf("sync: %w", err)}
	}
	if err := tmp.Chmod(w.perm); err != nil {
		return &domain.OutputWriteError{Path: path, Err: fmt.Errorf("chmod: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return &domain.OutputWriteError{Path: path, Err: fmt.Errorf("close: %w", err)}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		committed = true
		return &domain.OutputWriteError{Path: path, Err: fmt.Errorf("rename: %w", err)}
	}

	committed = true
	return nil
}

// errorTaggingWriter turns raw write failures into OutputWriteError so the
// caller can tell them apart from input failures
type errorTaggingWriter struct {
	w    io.Writer
	path string
}

func (e *errorTaggingWriter) Write(p []byte) (int, error) {
	n, err := e.w.Write(p)
	if err != nil {
		return n, &domain.OutputWriteError{Path: e.path, Err: err}
	}
	return n, nil
}
