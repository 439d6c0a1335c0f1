package manifest

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriter_ExactFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "_DATA_")

	if err := w.WriteEntry("img/a.png", "data:image/png;base64,AAAAAAAAAAAAAA=="); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteEntry("sound/b.mp3", "data:audio/mpeg;base64,//uQAA=="); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "var _DATA_ = {\n" +
		"  \"img/a.png\": \"data:image/png;base64,AAAAAAAAAAAAAA==\",\n" +
		"  \"sound/b.mp3\": \"data:audio/mpeg;base64,//uQAA==\",\n" +
		"};\n"

	if buf.String() != expected {
		t.Errorf("output mismatch\nexpected:\n%s\ngot:\n%s", expected, buf.String())
	}
	if w.Count() != 2 {
		t.Errorf("expected count 2, got %d", w.Count())
	}
}

func TestWriter_HeaderAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "Data")

	if err := w.WriteHeader("b64.py"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "/* Generated by b64.py */\nvar Data = {\n};\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriter_HeaderAfterEntry(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "Data")
	w.WriteEntry("a", "b")

	if err := w.WriteHeader("tool"); !errors.Is(err, ErrHeaderAfterBody) {
		t.Errorf("expected ErrHeaderAfterBody, got %v", err)
	}
}

func TestWriter_EntryAfterClose(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "Data")
	w.Close()

	if err := w.WriteEntry("a", "b"); err == nil {
		t.Error("expected error writing after close")
	}
}

func TestWriter_RejectsInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "Data")

	if err := w.WriteEntry("a\xff.png", "data:image/png;base64,MQ=="); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8 for key, got %v", err)
	}
	if err := w.WriteEntry("a.png", "data:\xfe;base64,"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8 for value, got %v", err)
	}
	if w.Count() != 0 {
		t.Errorf("expected no entries, got %d", w.Count())
	}

	w.Close()
	if buf.String() != "var Data = {\n};\n" {
		t.Errorf("expected empty declaration, got %q", buf.String())
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"img/a.png", `"img/a.png"`},
		{`say "hi".png`, `"say \"hi\".png"`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"bell\x07", `"bell\u0007"`},
		{"ünïcode.png", `"ünïcode.png"`},
		{"line\u2028sep", `"line\u2028sep"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Quote(tt.in); got != tt.expected {
				t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.expected)
			}
		})
	}
}

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"_DATA_", true},
		{"Data", true},
		{"$assets", true},
		{"data2", true},
		{"", false},
		{"2data", false},
		{"my-data", false},
		{"my data", false},
		{"var", false},
		{"class", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidIdentifier(tt.name); got != tt.valid {
				t.Errorf("ValidIdentifier(%q) = %v, want %v", tt.name, got, tt.valid)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "Data")
	w.WriteHeader("b64pack")

	entries := []Entry{
		{Key: "img/a.png", Value: "data:image/png;base64,AAAA"},
		{Key: `odd "name".bin`, Value: "data:;base64,AQI="},
		{Key: "sound/b.mp3", Value: "data:audio/mpeg;base64," + strings.Repeat("A", 200000)},
	}
	for _, e := range entries {
		if err := w.WriteEntry(e.Key, e.Value); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	w.Close()

	doc, err := Parse(&buf)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if doc.Header != "b64pack" {
		t.Errorf("expected header 'b64pack', got %q", doc.Header)
	}
	if doc.Name != "Data" {
		t.Errorf("expected name 'Data', got %q", doc.Name)
	}
	if len(doc.Entries) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(doc.Entries))
	}
	for i, e := range entries {
		if doc.Entries[i] != e {
			t.Errorf("entry %d mismatch: got %q", i, doc.Entries[i].Key)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse(strings.NewReader("var _DATA_ = {\n};\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Name != "_DATA_" {
		t.Errorf("expected name _DATA_, got %q", doc.Name)
	}
	if len(doc.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(doc.Entries))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"no declaration", "  \"a\": \"b\",\n};\n"},
		{"missing close", "var D = {\n  \"a\": \"b\",\n"},
		{"bad entry", "var D = {\n  a: \"b\",\n};\n"},
		{"bad identifier", "var 1D = {\n};\n"},
		{"trailing junk", "var D = {\n};\nvar E = {\n};\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			var perr ParseError
			if !errors.As(err, &perr) {
				t.Errorf("expected ParseError, got %T", err)
			}
		})
	}
}
