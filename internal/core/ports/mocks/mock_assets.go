package mocks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/kamal-hamza/b64pack/internal/core/domain"
)

// MockAssetRepository is an in-memory AssetRepository for testing
type MockAssetRepository struct {
	mu       sync.RWMutex
	root     string
	files    map[string][]byte
	readErrs map[string]error
	ListErr  error
	Reads    []string
}

// NewMockAssetRepository creates an empty mock repository rooted at root
func NewMockAssetRepository(root string) *MockAssetRepository {
	return &MockAssetRepository{
		root:     root,
		files:    make(map[string][]byte),
		readErrs: make(map[string]error),
	}
}

// AddFile registers a file under its forward-slash relative path
func (m *MockAssetRepository) AddFile(relPath string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[relPath] = data
}

// FailRead makes Read return err for relPath
func (m *MockAssetRepository) FailRead(relPath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrs[relPath] = err
}

func (m *MockAssetRepository) Root() string {
	return m.root
}

func (m *MockAssetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	assets := make([]domain.Asset, 0, len(m.files))
	for rel, data := range m.files {
		assets = append(assets, domain.Asset{
			Key:        rel,
			RelPath:    rel,
			SourcePath: m.root + "/" + rel,
			Size:       int64(len(data)),
		})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].RelPath < assets[j].RelPath })
	return assets, nil
}

func (m *MockAssetRepository) Read(ctx context.Context, asset domain.Asset) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reads = append(m.Reads, asset.RelPath)
	if err, ok := m.readErrs[asset.RelPath]; ok {
		return nil, &domain.FileReadError{Path: asset.SourcePath, Err: err}
	}
	data, ok := m.files[asset.RelPath]
	if !ok {
		return nil, &domain.FileReadError{Path: asset.SourcePath, Err: os.ErrNotExist}
	}
	return data, nil
}

// MockOutputWriter captures committed output in memory
type MockOutputWriter struct {
	mu       sync.Mutex
	Files    map[string][]byte
	WriteErr error
}

// NewMockOutputWriter creates an empty mock output writer
func NewMockOutputWriter() *MockOutputWriter {
	return &MockOutputWriter{Files: make(map[string][]byte)}
}

// Write buffers fill's output and stores it only when fill succeeds
func (m *MockOutputWriter) Write(ctx context.Context, path string, fill func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return &domain.OutputWriteError{Path: path, Err: m.WriteErr}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[path] = buf.Bytes()
	return nil
}

// Get returns the committed content for path
func (m *MockOutputWriter) Get(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.Files[path]
	if !ok {
		return nil, errors.New("not written: " + path)
	}
	return data, nil
}
