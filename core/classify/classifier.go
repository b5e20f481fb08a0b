// Package classify maps raw, inconsistently worded chapter labels onto the
// canonical chapter names of a subject taxonomy.
//
// Each taxonomy is plain data: an ordered rule list (first match wins) and,
// for ICT, a chapter-number table consulted before the rules. Unmatched
// labels pass through in their normalized form so unknown chapters still
// surface downstream.
package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/normalize"
)

// Rule maps any of its trigger substrings to a canonical label.
type Rule struct {
	Triggers []string
	Label    string
}

// matches reports whether any trigger occurs in label.
func (r Rule) matches(label string) bool {
	for _, t := range r.Triggers {
		if strings.Contains(label, t) {
			return true
		}
	}
	return false
}

// Table is the read-only classification data for one taxonomy.
type Table struct {
	Taxonomy core.Taxonomy
	Rules    []Rule
	// Chapters is keyed by the chapter number as written, so "03" does not hit "3".
	Chapters map[string]string
	Pattern  *regexp.Regexp
}

func chapterNumberPattern(markers []string) *regexp.Regexp {
	quoted := make([]string, len(markers))
	for i, m := range markers {
		quoted[i] = regexp.QuoteMeta(m)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)[\s\p{Zs}]*(\d+)`)
}

// Classify returns the canonical chapter for rawLabel.
// A label that is empty, or empty once markup is stripped, yields
// OtherChapter; an unknown label is returned normalized.
func Classify(rawLabel string, t core.Taxonomy) string {
	label, _ := Match(rawLabel, t)
	return label
}

// Match is Classify that also reports whether a canonical chapter was found.
func Match(rawLabel string, t core.Taxonomy) (string, bool) {
	if rawLabel == "" {
		return OtherChapter, false
	}
	name := normalize.Text(rawLabel)
	if name == "" {
		return OtherChapter, false
	}

	table, ok := tables[t]
	if !ok {
		return name, false
	}
	return table.match(name)
}

func (tb *Table) match(name string) (string, bool) {
	if tb.Pattern != nil && tb.Chapters != nil {
		if m := tb.Pattern.FindStringSubmatch(name); m != nil {
			if label, ok := tb.Chapters[m[1]]; ok {
				return label, true
			}
		}
	}
	for _, r := range tb.Rules {
		if r.matches(name) {
			return r.Label, true
		}
	}
	return name, false
}

// Chapters lists the canonical chapter labels of a taxonomy: numbered
// chapters in numeric order, otherwise rule labels in rule order.
func Chapters(t core.Taxonomy) []string {
	table, ok := tables[t]
	if !ok {
		return nil
	}

	if len(table.Chapters) > 0 {
		keys := make([]string, 0, len(table.Chapters))
		for k := range table.Chapters {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) < len(keys[j])
			}
			return keys[i] < keys[j]
		})
		labels := make([]string, len(keys))
		for i, k := range keys {
			labels[i] = table.Chapters[k]
		}
		return labels
	}

	seen := make(map[string]bool)
	var labels []string
	for _, r := range table.Rules {
		if seen[r.Label] {
			continue
		}
		seen[r.Label] = true
		labels = append(labels, r.Label)
	}
	return labels
}
