// Package output handles file naming and writing for qbformat outputs.
// Single conversions are named after the mode and source label
// (e.g. physics_Dhaka_Board.json); batch conversions mirror the input
// file name so each export maps to exactly one output.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOnly writes a single conversion as <sanitized name><ext>.
func (w *Writer) WriteOnly(name string, data []byte, ext string) (string, error) {
	p := filepath.Join(w.OutputDir, Sanitize(name)+ext)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", p, err)
	}
	return p, nil
}

// WriteAll writes one output of a batch run, named after its source.
// Example: exports/dhaka.json → <out>/dhaka.json (ext replaces the source's).
func (w *Writer) WriteAll(source string, data []byte, ext string) (string, error) {
	p := filepath.Join(w.OutputDir, baseName(source)+ext)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", p, err)
	}
	return p, nil
}

// baseName strips directories and the extension from a file path or URL.
func baseName(source string) string {
	name := source
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Host != "" {
		name = path.Base(strings.TrimSuffix(u.Path, "/"))
		if name == "." || name == "/" || name == "" {
			return Sanitize(u.Host)
		}
	} else {
		name = filepath.Base(source)
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return Sanitize(name)
}

// Sanitize replaces everything except letters, combining marks and digits
// with underscores. Marks are kept so Bengali names stay readable.
func Sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if unicode.IsLetter(ch) || unicode.IsMark(ch) || unicode.IsDigit(ch) {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "output"
	}
	return b.String()
}
