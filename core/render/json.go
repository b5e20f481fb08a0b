// Package render implements the qbformat output formats. The JSON renderer
// produces the canonical output array: two-space indentation, keys in
// OutputRecord field order, and no HTML escaping.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/qbformat/core"
)

// JSONRenderer produces the pretty-printed record array.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render serializes the batch records.
func (r *JSONRenderer) Render(batch core.Batch) ([]byte, error) {
	return MarshalRecords(batch.Records)
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// MarshalRecords encodes records deterministically. A nil slice encodes as [].
func MarshalRecords(records []core.OutputRecord) ([]byte, error) {
	if records == nil {
		records = []core.OutputRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 as raw characters.
// encoding/json always escapes them, even with SetEscapeHTML(false).
// Escapes are consumed in pairs so an escaped backslash followed by
// "u2028" in the text stays as it is.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if i+5 < len(b) && string(b[i+1:i+5]) == "u202" && (b[i+5] == '8' || b[i+5] == '9') {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}
