package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/kamal-hamza/b64pack/internal/core/domain"
	"github.com/kamal-hamza/b64pack/internal/core/ports"
)

// FileAssetRepository discovers and reads assets from a directory tree
type FileAssetRepository struct {
	root string
}

// NewFileAssetRepository creates a repository scanning root recursively
func NewFileAssetRepository(root string) *FileAssetRepository {
	return &FileAssetRepository{
		root: root,
	}
}

// Ensure it implements the interface
var _ ports.AssetRepository = (*FileAssetRepository)(nil)

func (r *FileAssetRepository) Root() string {
	return r.root
}

// List walks the root and returns every asset file, sorted by relative path.
// Hidden files and directories are skipped, as are names without an
// extension. Symlinks are followed: to a regular file it is listed, to a
// directory its tree is walked under the link's path.
func (r *FileAssetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	absRoot, err := filepath.Abs(r.root)
	if err != nil {
		return nil, &domain.InputNotFoundError{Path: r.root, Err: err}
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &domain.InputNotFoundError{Path: r.root, Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.InputNotFoundError{Path: r.root, Err: errors.New("not a directory")}
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, &domain.InputNotFoundError{Path: r.root, Err: err}
	}

	w := &walker{
		ctx:     ctx,
		root:    r.root,
		visited: map[string]bool{realRoot: true},
	}
	if err := w.walk(realRoot, absRoot, ""); err != nil {
		return nil, err
	}

	sort.Slice(w.assets, func(i, j int) bool {
		return w.assets[i].RelPath < w.assets[j].RelPath
	})

	return w.assets, nil
}

type walker struct {
	ctx     context.Context
	root    string
	visited map[string]bool // real paths of directories entered through a symlink
	assets  []domain.Asset
}

// walk scans dir, whose files are reported under displayDir on disk and
// under relPrefix in manifest keys
func (w *walker) walk(dir, displayDir, relPrefix string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && relPrefix == "" {
				return &domain.InputNotFoundError{Path: w.root, Err: err}
			}
			return &domain.FileReadError{Path: path, Err: err}
		}
		if ctxErr := w.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == dir {
			return nil
		}

		name := d.Name()
		if domain.IsHidden(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		sub, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("failed to resolve relative path for %s: %w", path, err)
		}
		sourcePath := filepath.Join(displayDir, sub)
		rel := domain.NormalizePath(filepath.Join(relPrefix, sub))

		fi, err := os.Stat(path)
		if err != nil {
			return &domain.FileReadError{Path: sourcePath, Err: err}
		}

		if fi.IsDir() {
			// Symlinked directory; each real directory is entered once
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				return &domain.FileReadError{Path: sourcePath, Err: err}
			}
			if w.visited[resolved] {
				return nil
			}
			w.visited[resolved] = true
			return w.walk(resolved, sourcePath, rel)
		}

		if !fi.Mode().IsRegular() || !domain.IsAssetName(name) {
			return nil
		}
		if !utf8.ValidString(rel) {
			return &domain.FileReadError{Path: sourcePath, Err: domain.ErrInvalidPathEncoding}
		}

		w.assets = append(w.assets, domain.Asset{
			Key:        rel,
			RelPath:    rel,
			SourcePath: sourcePath,
			Size:       fi.Size(),
		})
		return nil
	})
}

// Read returns the full contents of asset. The handle is released before
// returning.
func (r *FileAssetRepository) Read(ctx context.Context, asset domain.Asset) ([]byte, error) {
	f, err := os.Open(asset.SourcePath)
	if err != nil {
		return nil, &domain.FileReadError{Path: asset.SourcePath, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &domain.FileReadError{Path: asset.SourcePath, Err: err}
	}
	return data, nil
}
