// Package pipeline implements the conversion stage of qbformat:
// unwrap the input document → reshape every item → summarize.
//
// Convert is pure. Recording history and clearing input are left to the
// caller, which only acts on a successful Result.
package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/reshape"
)

// UnknownSource labels a batch whose first item names no board.
const UnknownSource = "Unknown Source"

// Result is the output of one successful conversion.
type Result struct {
	Records     []core.OutputRecord
	SourceLabel string
	Diagnostics []reshape.Diagnostics
}

// Unmatched returns the diagnostics of items whose chapter passed through unclassified.
func (r Result) Unmatched() []reshape.Diagnostics {
	var out []reshape.Diagnostics
	for _, d := range r.Diagnostics {
		if !d.ChapterMatched {
			out = append(out, d)
		}
	}
	return out
}

// ConvertText parses raw JSON text and converts it.
func ConvertText(text string, t core.Taxonomy) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return Convert(parsed, t)
}

// Convert reshapes every item of a decoded document, preserving input order.
// The document is either {"questions": [...]} or a bare array.
func Convert(parsed any, t core.Taxonomy) (Result, error) {
	items := Items(parsed)
	if len(items) == 0 {
		return Result{}, ErrEmptyInput
	}

	res := Result{
		Records:     make([]core.OutputRecord, len(items)),
		Diagnostics: make([]reshape.Diagnostics, len(items)),
		SourceLabel: SourceLabel(items[0]),
	}
	for i, item := range items {
		rec, diag := reshape.ReshapeDetailed(item, t)
		diag.Index = i
		res.Records[i] = rec
		res.Diagnostics[i] = diag
	}
	return res, nil
}

// Items resolves the item collection of a decoded document. Any shape
// other than an object with a "questions" array or a bare array has no items.
func Items(parsed any) []any {
	switch v := parsed.(type) {
	case map[string]any:
		items, _ := v["questions"].([]any)
		return items
	case []any:
		return v
	default:
		return nil
	}
}

// SourceLabel names the exam board of an item: source.board, then board,
// then board_name, else UnknownSource.
func SourceLabel(item any) string {
	obj := reshape.Object(item)
	if board := reshape.Text(reshape.Object(obj["source"])["board"]); board != "" {
		return board
	}
	if board := reshape.FirstText(obj, "board", "board_name"); board != "" {
		return board
	}
	return UnknownSource
}
