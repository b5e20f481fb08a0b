// Package reshape turns one loosely structured source question group into
// a fixed-width OutputRecord.
//
// Source items are decoded JSON values (map[string]any). Missing or
// mistyped fields never fail: they produce empty strings.
package reshape

import (
	"strings"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/classify"
	"github.com/gaurav-prasanna/qbformat/core/normalize"
)

// slotNames are the sub-question tags that reach the output record.
var slotNames = map[string]bool{"a": true, "b": true, "c": true, "d": true}

type slot struct {
	question string
	answer   string
}

// Diagnostics describes how one item was reshaped. It never changes the record.
type Diagnostics struct {
	Index           int      `json:"index"`
	Chapter         string   `json:"chapter"`
	ChapterMatched  bool     `json:"chapter_matched"`
	IgnoredTags     []string `json:"ignored_tags,omitempty"`
	OverwrittenTags []string `json:"overwritten_tags,omitempty"`
}

// Clean reports whether the item needed no fallback behavior.
func (d Diagnostics) Clean() bool {
	return d.ChapterMatched && len(d.IgnoredTags) == 0 && len(d.OverwrittenTags) == 0
}

// Reshape converts one source item into an OutputRecord.
func Reshape(item any, t core.Taxonomy) core.OutputRecord {
	rec, _ := ReshapeDetailed(item, t)
	return rec
}

// ReshapeDetailed is Reshape plus per-item diagnostics.
func ReshapeDetailed(item any, t core.Taxonomy) (core.OutputRecord, Diagnostics) {
	obj := Object(item)

	chapter, matched := classify.Match(FirstText(obj, ChapterKeys...), t)
	diag := Diagnostics{Chapter: chapter, ChapterMatched: matched}

	// Later sub-questions with the same tag overwrite earlier ones.
	slots := make(map[string]slot)
	subs, _ := obj[subQuestionsKey].([]any)
	for _, raw := range subs {
		sub := Object(raw)
		tag := Text(sub[typeKey])
		if tag == "" {
			continue
		}
		tag = strings.ToLower(tag)

		if _, dup := slots[tag]; dup {
			diag.OverwrittenTags = appendUnique(diag.OverwrittenTags, tag)
		}
		if !slotNames[tag] {
			diag.IgnoredTags = appendUnique(diag.IgnoredTags, tag)
		}
		slots[tag] = slot{
			question: normalize.Text(Text(sub[questionKey])),
			answer:   normalize.Text(Text(sub[answerKey])),
		}
	}

	rec := core.OutputRecord{
		Chapter:  chapter,
		Stimulus: normalize.Text(FirstText(obj, StimulusKeys...)),
		QA:       slots["a"].question,
		AnsA:     slots["a"].answer,
		QB:       slots["b"].question,
		AnsB:     slots["b"].answer,
		QC:       slots["c"].question,
		AnsC:     slots["c"].answer,
		QD:       slots["d"].question,
		AnsD:     slots["d"].answer,
	}
	return rec, diag
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
