package output

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/kamal-hamza/b64pack/internal/core/domain"
)

func TestAtomicFileWriter_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "_DATA_.js")

	w := NewAtomicFileWriter(0644)
	err := w.Write(context.Background(), path, func(out io.Writer) error {
		_, err := io.WriteString(out, "var _DATA_ = {\n};\n")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(content) != "var _DATA_ = {\n};\n" {
		t.Errorf("unexpected content: %q", content)
	}

	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0644 {
			t.Errorf("expected mode 0644, got %v", info.Mode().Perm())
		}
	}

	assertNoTempFiles(t, filepath.Dir(path))
}

func TestAtomicFileWriter_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Data.js")
	if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}

	fillErr := &domain.FileReadError{Path: "data/a.png", Err: os.ErrPermission}

	w := NewAtomicFileWriter(0)
	err := w.Write(context.Background(), path, func(out io.Writer) error {
		io.WriteString(out, "var Data = {\n  \"partial\": ")
		return fillErr
	})
	if !errors.Is(err, fillErr) {
		t.Fatalf("expected fill error to pass through, got %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "previous" {
		t.Errorf("previous output was modified: %q", content)
	}

	assertNoTempFiles(t, dir)
}

func TestAtomicFileWriter_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Data.js")

	w := NewAtomicFileWriter(0644)
	err := w.Write(context.Background(), path, func(out io.Writer) error {
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected no output file after failure")
	}
	assertNoTempFiles(t, dir)
}

func TestAtomicFileWriter_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Data.js")

	ctx, cancel := context.WithCancel(context.Background())
	err := NewAtomicFileWriter(0644).Write(ctx, path, func(out io.Writer) error {
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected no output file after cancellation")
	}
}

func TestAtomicFileWriter_UncreatableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file, not dir"), 0644); err != nil {
		t.Fatal(err)
	}

	err := NewAtomicFileWriter(0644).Write(context.Background(), filepath.Join(blocker, "Data.js"), func(out io.Writer) error {
		return nil
	})

	var writeErr *domain.OutputWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected OutputWriteError, got %v", err)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}
