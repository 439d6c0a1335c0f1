package ui

import (
	"strings"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in       int64
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.expected {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Key", Width: 10},
		{Header: "Size", Align: "right"},
	})
	table.AddRow([]string{"img/a.png", "10 B"})
	table.AddRow([]string{"sound/b.mp3", "4 B"})

	out := table.Render()
	if out == "" {
		t.Fatal("expected rendered table")
	}
	for _, want := range []string{"Key", "Size", "img/a.png", "sound/b.mp3"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
}

func TestPadString(t *testing.T) {
	tests := []struct {
		s        string
		width    int
		align    string
		expected string
	}{
		{"ab", 4, "left", "ab  "},
		{"ab", 4, "right", "  ab"},
		{"ab", 5, "center", " ab  "},
		{"abcdef", 3, "left", "abcdef"},
		{"ünï", 5, "left", "ünï  "},
	}

	for _, tt := range tests {
		if got := padString(tt.s, tt.width, tt.align); got != tt.expected {
			t.Errorf("padString(%q, %d, %q) = %q, want %q", tt.s, tt.width, tt.align, got, tt.expected)
		}
	}
}

func TestTableRender_Footer(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Type"},
		{Header: "Count", Align: "right"},
	})
	table.AddRow([]string{"image/png", "2"})
	table.SetFooter([]string{"Total", "2"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, separator, row, separator, footer; got %d lines", len(lines))
	}
	if !strings.Contains(lines[4], "Total") {
		t.Errorf("expected footer on last line, got %q", lines[4])
	}
}

func TestTableRender_NoColumns(t *testing.T) {
	if out := NewTable(nil).Render(); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestFormatMimeType(t *testing.T) {
	if got := FormatMimeType("image/png"); got != "image/png" {
		t.Errorf("expected known type unchanged, got %q", got)
	}
	if got := FormatMimeType(""); !strings.Contains(got, UnknownTypeLabel) {
		t.Errorf("expected %q in %q", UnknownTypeLabel, got)
	}
}
