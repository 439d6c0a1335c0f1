package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrHeaderAfterBody is returned when WriteHeader is called after the
// declaration has been started
var ErrHeaderAfterBody = errors.New("header must be written before any entry")

// ErrInvalidUTF8 is returned by WriteEntry for keys or values that are not
// valid UTF-8. Quoting them would map distinct byte strings onto U+FFFD.
var ErrInvalidUTF8 = errors.New("manifest strings must be valid UTF-8")

// Writer emits a manifest declaration of the form
//
//	var <name> = {
//	  "<key>": "<value>",
//	};
//
// Every entry line carries a trailing comma. The declaration is opened lazily
// so an optional header comment can precede it.
type Writer struct {
	w      *bufio.Writer
	name   string
	opened bool
	closed bool
	count  int
}

// NewWriter creates a manifest writer for the given identifier
func NewWriter(w io.Writer, name string) *Writer {
	return &Writer{
		w:    bufio.NewWriter(w),
		name: name,
	}
}

// WriteHeader writes "/* Generated by <tool> */" on its own line
func (mw *Writer) WriteHeader(tool string) error {
	if mw.opened {
		return ErrHeaderAfterBody
	}
	_, err := fmt.Fprintf(mw.w, "/* Generated by %s */\n", strings.ReplaceAll(tool, "*/", "* /"))
	return err
}

func (mw *Writer) open() error {
	if mw.opened {
		return nil
	}
	mw.opened = true
	_, err := fmt.Fprintf(mw.w, "var %s = {\n", mw.name)
	return err
}

// WriteEntry appends one key/value line
func (mw *Writer) WriteEntry(key, value string) error {
	if mw.closed {
		return errors.New("manifest writer is closed")
	}
	if !utf8.ValidString(key) || !utf8.ValidString(value) {
		return fmt.Errorf("%w: %q", ErrInvalidUTF8, key)
	}
	if err := mw.open(); err != nil {
		return err
	}

	mw.w.WriteString("  ")
	mw.w.WriteString(Quote(key))
	mw.w.WriteString(": ")
	mw.w.WriteString(Quote(value))
	if _, err := mw.w.WriteString(",\n"); err != nil {
		return err
	}

	mw.count++
	return nil
}

// Count returns the number of entries written so far
func (mw *Writer) Count() int {
	return mw.count
}

// Close terminates the declaration and flushes buffered output.
// It does not close the underlying writer.
func (mw *Writer) Close() error {
	if mw.closed {
		return nil
	}
	if err := mw.open(); err != nil {
		return err
	}
	mw.closed = true

	if _, err := mw.w.WriteString("};\n"); err != nil {
		return err
	}
	return mw.w.Flush()
}

// Quote renders s as a double-quoted JavaScript string literal. Plain paths
// and data URIs pass through unchanged. s must be valid UTF-8.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "let": true, "static": true, "yield": true,
	"await": true,
}

// ValidIdentifier reports whether name can be used as a JavaScript variable name
func ValidIdentifier(name string) bool {
	if name == "" || reservedWords[name] {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
