package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Entry is one key/value line of a manifest
type Entry struct {
	Key   string
	Value string
}

// Document is a parsed manifest
type Document struct {
	Header  string // Tool name from "/* Generated by <tool> */", if present
	Name    string
	Entries []Entry
}

// ParseError reports a malformed manifest line
type ParseError struct {
	Line    int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parse reads a manifest produced by Writer
func Parse(r io.Reader) (*Document, error) {
	// Entry lines hold whole base64 payloads, so read lines without a size cap
	br := bufio.NewReader(r)
	doc := &Document{Entries: []Entry{}}

	lineNum := 0
	inBody := false
	done := false

	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read manifest: %w", readErr)
		}
		if raw == "" && readErr != nil {
			break
		}
		lineNum++
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			// skip
		case done:
			return nil, ParseError{Line: lineNum, Message: "unexpected content after closing brace"}
		case !inBody && strings.HasPrefix(line, "/*"):
			if !strings.HasSuffix(line, "*/") {
				return nil, ParseError{Line: lineNum, Message: "unterminated header comment"}
			}
			body := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "/*"), "*/"))
			doc.Header = strings.TrimSpace(strings.TrimPrefix(body, "Generated by"))
		case !inBody:
			name, err := parseDeclaration(line)
			if err != nil {
				return nil, ParseError{Line: lineNum, Message: err.Error()}
			}
			doc.Name = name
			inBody = true
		case line == "};" || line == "}":
			inBody = false
			done = true
		default:
			entry, err := parseEntry(line)
			if err != nil {
				return nil, ParseError{Line: lineNum, Message: err.Error()}
			}
			doc.Entries = append(doc.Entries, entry)
		}

		if readErr != nil {
			break
		}
	}

	if !done {
		if doc.Name == "" {
			return nil, ParseError{Line: lineNum, Message: "missing variable declaration"}
		}
		return nil, ParseError{Line: lineNum, Message: "missing closing brace"}
	}

	return doc, nil
}

func parseDeclaration(line string) (string, error) {
	rest, ok := strings.CutPrefix(line, "var ")
	if !ok {
		return "", errors.New("expected 'var <name> = {'")
	}
	name, brace, ok := strings.Cut(rest, "=")
	if !ok || strings.TrimSpace(brace) != "{" {
		return "", errors.New("expected 'var <name> = {'")
	}
	name = strings.TrimSpace(name)
	if !ValidIdentifier(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	return name, nil
}

func parseEntry(line string) (Entry, error) {
	line = strings.TrimSuffix(line, ",")

	key, rest, err := readQuoted(line)
	if err != nil {
		return Entry{}, fmt.Errorf("bad key: %w", err)
	}
	rest = strings.TrimSpace(rest)
	rest, ok := strings.CutPrefix(rest, ":")
	if !ok {
		return Entry{}, errors.New("expected ':' after key")
	}
	value, tail, err := readQuoted(strings.TrimSpace(rest))
	if err != nil {
		return Entry{}, fmt.Errorf("bad value: %w", err)
	}
	if strings.TrimSpace(tail) != "" {
		return Entry{}, errors.New("unexpected trailing content")
	}
	return Entry{Key: key, Value: value}, nil
}

// readQuoted consumes one double-quoted literal from the start of s
func readQuoted(s string) (string, string, error) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", errors.New("expected string literal")
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			unquoted, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return "", "", err
			}
			return unquoted, s[i+1:], nil
		}
	}
	return "", "", errors.New("unterminated string literal")
}
