package reshape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/classify"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestReshape_basic(t *testing.T) {
	item := decode(t, `{
		"chapter": "নিউটন ১ম সূত্র",
		"context": "<p>A block &amp; a spring.</p>",
		"questions": [
			{"type": "A", "question": "<p>Q1?</p>", "answer": "Ans1"},
			{"type": "b", "question": "Q2?", "answer": "<b>Ans2</b>"}
		]
	}`)

	rec := Reshape(item, core.TaxonomyPhysics)

	assert.Equal(t, core.OutputRecord{
		Chapter:  "Chapter 04: নিউটোনিয়ান বলবিদ্যা",
		Stimulus: "A block & a spring.",
		QA:       "Q1?",
		AnsA:     "Ans1",
		QB:       "Q2?",
		AnsB:     "Ans2",
	}, rec)
}

func TestReshape_lastTagWins(t *testing.T) {
	item := decode(t, `{"questions": [
		{"type": "a", "question": "first", "answer": "1"},
		{"type": "A", "question": "second", "answer": "2"}
	]}`)

	rec, diag := ReshapeDetailed(item, core.TaxonomyICT)

	assert.Equal(t, "second", rec.QA)
	assert.Equal(t, "2", rec.AnsA)
	assert.Equal(t, []string{"a"}, diag.OverwrittenTags)
}

func TestReshape_noSubQuestions(t *testing.T) {
	rec := Reshape(decode(t, `{"chapter_name": "ভেক্টর", "questions": []}`), core.TaxonomyPhysics)

	assert.Equal(t, core.OutputRecord{Chapter: "Chapter 02: ভেক্টর"}, rec)
}

func TestReshape_missingEverything(t *testing.T) {
	for _, raw := range []string{`{}`, `null`, `42`, `"text"`, `[]`} {
		rec, diag := ReshapeDetailed(decode(t, raw), core.TaxonomyPhysics)
		assert.Equal(t, core.OutputRecord{Chapter: classify.OtherChapter}, rec, raw)
		assert.False(t, diag.ChapterMatched)
	}
}

func TestReshape_fieldPriority(t *testing.T) {
	item := decode(t, `{
		"chapter_name": "ভেক্টর",
		"chapter": "মহাকর্ষ",
		"context": "from context",
		"stimulus": "from stimulus"
	}`)
	rec := Reshape(item, core.TaxonomyPhysics)
	assert.Equal(t, "Chapter 02: ভেক্টর", rec.Chapter)
	assert.Equal(t, "from context", rec.Stimulus)

	// Empty values fall through to the next key.
	item = decode(t, `{"chapter_name": "", "chapter": "মহাকর্ষ", "context": null, "stimulus": "s"}`)
	rec = Reshape(item, core.TaxonomyPhysics)
	assert.Equal(t, "Chapter 06: মহাকর্ষ ও অভিকর্ষ", rec.Chapter)
	assert.Equal(t, "s", rec.Stimulus)
}

func TestReshape_tagsOutsideSlotsIgnored(t *testing.T) {
	item := decode(t, `{"chapter": "HTML", "questions": [
		{"type": "e", "question": "extra", "answer": "x"},
		{"type": "", "question": "untagged", "answer": "y"},
		{"question": "no type", "answer": "z"},
		"not an object",
		{"type": "d", "question": 7, "answer": true}
	]}`)

	rec, diag := ReshapeDetailed(item, core.TaxonomyICT)

	assert.Equal(t, core.OutputRecord{
		Chapter: classify.Chapters(core.TaxonomyICT)[3],
		QD:      "7",
		AnsD:    "true",
	}, rec)
	assert.Equal(t, []string{"e"}, diag.IgnoredTags)
	assert.True(t, diag.ChapterMatched)
	assert.False(t, diag.Clean())
}

func TestReshape_subQuestionsNotArray(t *testing.T) {
	rec := Reshape(decode(t, `{"chapter": "Misc", "questions": {"type": "a"}}`), core.TaxonomyICT)
	assert.Equal(t, core.OutputRecord{Chapter: "Misc"}, rec)
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "12", Text(float64(12)))
	assert.Equal(t, "1.5", Text(1.5))
	assert.Equal(t, "x", Text("x"))
	assert.Equal(t, "", Text([]any{"x"}))
	assert.Equal(t, "", Text(map[string]any{"x": 1}))
}
