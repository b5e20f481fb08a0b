package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/qbformat/core"
)

func TestClassify_emptyLabel(t *testing.T) {
	for _, tax := range core.Taxonomies {
		assert.Equal(t, OtherChapter, Classify("", tax))
		assert.Equal(t, OtherChapter, Classify("<p> </p>", tax), "markup-only label")
	}
}

func TestClassify_physics(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"newton bengali", "নিউটন ১ম সূত্র", "Chapter 04: নিউটোনিয়ান বলবিদ্যা"},
		{"newton english", "Newtonian Mechanics", "Chapter 04: নিউটোনিয়ান বলবিদ্যা"},
		{"markup stripped first", "<b>ভেক্টর</b>", "Chapter 02: ভেক্টর"},
		{"decomposed static electricity", "স্থির তড়িৎ (Paper 2)", "Chapter 02: স্থির তড়িৎ"},
		{"precomposed static electricity", "স্থির তড়িৎ", "Chapter 02: স্থির তড়িৎ"},
		{"precomposed current electricity", "চলতড়িৎ", "Chapter 03: চলতড়িৎ"},
		{"nuclear", "নিউক্লিয়ার পদার্থবিজ্ঞান", "Chapter 09: পরমাণুর মডেল এবং নিউক্লিয়ার পদার্থবিজ্ঞান"},
		{"semiconductor alias", "অর্ধ-পরিবাহী", "Chapter 10: সেমিকন্ডাক্টর ও ইলেকট্রনিক্স"},
		{"work energy comma", "কাজ, শক্তি ও ক্ষমতা", "Chapter 05: কাজ, শক্তি ও ক্ষমতা"},
		{"measurement", "পরিমাপ", "Chapter 01: ভৌত জগৎ ও পরিমাপ"},
		{"unknown passes through", "  <i>তরঙ্গ</i> ", "তরঙ্গ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.label, core.TaxonomyPhysics))
		})
	}
}

func TestClassify_physicsFirstMatchWins(t *testing.T) {
	// Both the thermodynamics and the ideal gas rules match; the earlier rule wins.
	assert.Equal(t, "Chapter 01: তাপগতিবিদ্যা", Classify("আদর্শ গ্যাস ও তাপগতিবিদ্যা", core.TaxonomyPhysics))
	// Semiconductor precedes ideal gas.
	assert.Equal(t, "Chapter 10: সেমিকন্ডাক্টর ও ইলেকট্রনিক্স", Classify("আদর্শ গ্যাস, ইলেকট্রনিক্স", core.TaxonomyPhysics))
}

func TestClassify_ict(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"english chapter number", "Chapter 3: Number Systems", ictChapters["3"]},
		{"case insensitive marker", "CHAPTER 5", ictChapters["5"]},
		{"no space before number", "chapter2", ictChapters["2"]},
		{"bengali marker decomposed", "অধ্যায় 6", ictChapters["6"]},
		{"bengali marker precomposed", "অধ্যায় 1", ictChapters["1"]},
		{"unknown number falls back to rules", "Chapter 9 HTML basics", ictChapters["4"]},
		{"leading zero is not in table", "Chapter 03", "Chapter 03"},
		{"substring fallback", "প্রোগ্রামিং ভাষা (C)", ictChapters["5"]},
		{"html trigger", "HTML Tables", ictChapters["4"]},
		{"bengali digits use fallback", "অধ্যায় ৩ সংখ্যা পদ্ধতি", ictChapters["3"]},
		{"unknown passes through", "Misc", "Misc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.label, core.TaxonomyICT))
		})
	}
}

func TestClassify_ictNumberBeatsSubstring(t *testing.T) {
	label := "Chapter 3 ডেটাবেজ"
	assert.Equal(t, ictChapters["3"], Classify(label, core.TaxonomyICT))
}

func TestMatch(t *testing.T) {
	label, ok := Match("ভেক্টর", core.TaxonomyPhysics)
	assert.True(t, ok)
	assert.Equal(t, "Chapter 02: ভেক্টর", label)

	label, ok = Match("Optics 101", core.TaxonomyPhysics)
	assert.False(t, ok)
	assert.Equal(t, "Optics 101", label)

	label, ok = Match("", core.TaxonomyICT)
	assert.False(t, ok)
	assert.Equal(t, OtherChapter, label)
}

func TestClassify_deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, ictChapters["2"], Classify("কমিউনিকেশন", core.TaxonomyICT))
		assert.Equal(t, "কমিউনিকেশন", Classify("কমিউনিকেশন", core.TaxonomyPhysics))
	}
}

func TestChapters(t *testing.T) {
	ict := Chapters(core.TaxonomyICT)
	require.Len(t, ict, 6)
	assert.Equal(t, ictChapters["1"], ict[0])
	assert.Equal(t, ictChapters["6"], ict[5])

	physics := Chapters(core.TaxonomyPhysics)
	assert.Len(t, physics, len(physicsRules))
	assert.Equal(t, "Chapter 01: তাপগতিবিদ্যা", physics[0])

	assert.Nil(t, Chapters(core.Taxonomy("chemistry")))
}
