// Package grammar decodes the array payloads returned by the web
// translation endpoint. The endpoint elides nulls, so a payload like
//
//	[,,"en",,,,0.96954316,,[["en"],,[0.96954316]]]
//
// is not valid JSON. Parse first tries a strict decode and only falls back
// to repairing the elisions when that fails.
package grammar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed matches every error returned by Parse.
var ErrMalformed = errors.New("malformed response")

// ParseError describes a payload that could not be decoded even after
// repair.
type ParseError struct {
	// Snippet is the beginning of the payload, for diagnostics.
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response %q: %v", e.Snippet, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformed) hold for every ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

// Parse decodes raw into a Tree, repairing elided nulls if needed. No
// partial tree is returned on failure.
func Parse(raw string) (Tree, error) {
	if t, err := decodeStrict(raw); err == nil {
		return t, nil
	}
	t, err := decodeStrict(repair(raw))
	if err != nil {
		return Tree{}, &ParseError{Snippet: snippet(raw, 64), Err: err}
	}
	return t, nil
}

// ParseBytes is Parse for a response body.
func ParseBytes(raw []byte) (Tree, error) {
	return Parse(string(raw))
}

// ---------------------------------------------------------------------------
// Repair
// ---------------------------------------------------------------------------

// literal is the content of one quoted span, recorded before repair.
type literal struct {
	offset  int
	content string
}

// repair inserts explicit nulls into ",," and "[," runs. Quoted spans are
// recorded beforehand and written back by ordinal afterwards, so content
// inside string literals survives untouched.
func repair(text string) string {
	table := protect(text)

	for strings.Contains(text, ",,") || strings.Contains(text, "[,") {
		text = strings.ReplaceAll(text, ",,", ",null,")
		text = strings.ReplaceAll(text, "[,", "[null,")
	}

	return restore(text, table)
}

// protect records every opening quote (even ordinal) and the text up to
// the next quote.
func protect(text string) []literal {
	var table []literal
	for pos := 0; ; {
		open := strings.IndexByte(text[pos:], '"')
		if open < 0 {
			return table
		}
		p := pos + open + 1
		end := strings.IndexByte(text[p:], '"')
		if end < 0 {
			return append(table, literal{offset: p, content: text[p:]})
		}
		table = append(table, literal{offset: p, content: text[p : p+end]})
		pos = p + end + 1
	}
}

// restore rewrites the span after each opening quote with the recorded
// literal of the same ordinal. Positions are recomputed on the mutated text,
// so offset drift from the repair does not matter.
func restore(text string, table []literal) string {
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for j := 0; ; j++ {
		open := strings.IndexByte(text[pos:], '"')
		if open < 0 || j >= len(table) {
			b.WriteString(text[pos:])
			return b.String()
		}
		p := pos + open + 1
		b.WriteString(text[pos:p])
		b.WriteString(table[j].content)
		end := strings.IndexByte(text[p:], '"')
		if end < 0 {
			return b.String()
		}
		b.WriteByte('"')
		pos = p + end + 1
	}
}

// ---------------------------------------------------------------------------
// Strict decoding
// ---------------------------------------------------------------------------

func decodeStrict(raw string) (Tree, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Tree{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Tree{}, fmt.Errorf("trailing data after offset %d", dec.InputOffset())
	}
	return fromValue(v)
}

func fromValue(v any) (Tree, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Tree{}, fmt.Errorf("number %s: %w", x, err)
		}
		return Number(f), nil
	case []any:
		items := make([]Tree, len(x))
		for i, it := range x {
			t, err := fromValue(it)
			if err != nil {
				return Tree{}, err
			}
			items[i] = t
		}
		return List(items...), nil
	case map[string]any:
		fields := make(map[string]Tree, len(x))
		for k, it := range x {
			t, err := fromValue(it)
			if err != nil {
				return Tree{}, err
			}
			fields[k] = t
		}
		return Object(fields), nil
	default:
		return Tree{}, fmt.Errorf("unexpected value %T", v)
	}
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
