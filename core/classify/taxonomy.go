package classify

import "github.com/gaurav-prasanna/qbformat/core"

// OtherChapter is returned for a missing chapter label.
const OtherChapter = "অন্যান্য"

// physicsRules are checked top to bottom; paper 2 chapters come first so
// that labels such as "আদর্শ গ্যাস ও তাপগতিবিদ্যা" resolve to thermodynamics.
// Exports spell ড় both decomposed (U+09A1 U+09BC) and precomposed (U+09DC).
var physicsRules = []Rule{
	{Triggers: []string{"তাপগতিবিদ্যা"}, Label: "Chapter 01: তাপগতিবিদ্যা"},
	{Triggers: []string{"স্থির তড\u09bcিৎ", "স্থির ত\u09dcিৎ"}, Label: "Chapter 02: স্থির তড়িৎ"},
	{Triggers: []string{"চলতড\u09bcিৎ", "চলত\u09dcিৎ"}, Label: "Chapter 03: চলতড়িৎ"},
	{Triggers: []string{"ভৌত আলোকবিজ্ঞান"}, Label: "Chapter 07: ভৌত আলোকবিজ্ঞান"},
	{Triggers: []string{"আধুনিক পদার্থবিজ্ঞান"}, Label: "Chapter 08: আধুনিক পদার্থবিজ্ঞানের সূচনা"},
	{Triggers: []string{"পরমাণুর মডেল", "নিউক্লিয়ার"}, Label: "Chapter 09: পরমাণুর মডেল এবং নিউক্লিয়ার পদার্থবিজ্ঞান"},
	{Triggers: []string{"অর্ধ-পরিবাহী", "ইলেকট্রনিক্স", "সেমিকন্ডাক্টর"}, Label: "Chapter 10: সেমিকন্ডাক্টর ও ইলেকট্রনিক্স"},
	{Triggers: []string{"আদর্শ গ্যাস"}, Label: "Chapter 10: আদর্শ গ্যাস ও গ্যাসের গতিতত্ত্ব"},
	{Triggers: []string{"ভেক্টর"}, Label: "Chapter 02: ভেক্টর"},
	{Triggers: []string{"নিউটন", "Newtonian"}, Label: "Chapter 04: নিউটোনিয়ান বলবিদ্যা"},
	{Triggers: []string{"কাজ-শক্তি", "কাজ, শক্তি"}, Label: "Chapter 05: কাজ, শক্তি ও ক্ষমতা"},
	{Triggers: []string{"মহাকর্ষ"}, Label: "Chapter 06: মহাকর্ষ ও অভিকর্ষ"},
	{Triggers: []string{"গাঠনিক ধর্ম"}, Label: "Chapter 07: পদার্থের গাঠনিক ধর্ম"},
	{Triggers: []string{"পর্যাবৃত্ত গতি"}, Label: "Chapter 08: পর্যাবৃত্ত গতি"},
	{Triggers: []string{"ভৌত জগৎ", "পরিমাপ"}, Label: "Chapter 01: ভৌত জগৎ ও পরিমাপ"},
}

var ictChapters = map[string]string{
	"1": "১. তথ্য ও যোগাযোগ প্রযুক্তি : বিশ্ব ও বাংলাদেশ প্রেক্ষিত",
	"2": "২. কমিউনিকেশন সিস্টেমস ও নেটওয়ার্কিং",
	"3": "৩. সংখ্যা পদ্ধতি ও ডিজিটাল ডিভাইস",
	"4": "৪. ওয়েব ডিজাইন পরিচিতি এবং HTML",
	"5": "৫. প্রোগ্রামিং ভাষা",
	"6": "৬. ডেটাবেজ ম্যানেজমেন্ট সিস্টেম",
}

var ictRules = []Rule{
	{Triggers: []string{"বিশ্ব ও বাংলাদেশ"}, Label: ictChapters["1"]},
	{Triggers: []string{"কমিউনিকেশন"}, Label: ictChapters["2"]},
	{Triggers: []string{"সংখ্যা পদ্ধতি"}, Label: ictChapters["3"]},
	{Triggers: []string{"ওয়েব", "HTML"}, Label: ictChapters["4"]},
	{Triggers: []string{"প্রোগ্রামিং"}, Label: ictChapters["5"]},
	{Triggers: []string{"ডেটাবেজ"}, Label: ictChapters["6"]},
}

// ictChapterMarkers precede the chapter number, e.g. "Chapter 3" or "অধ্যায় 3".
var ictChapterMarkers = []string{"Chapter", "অধ্যায\u09bc", "অধ্যা\u09df"}

var tables = map[core.Taxonomy]*Table{
	core.TaxonomyPhysics: {
		Taxonomy: core.TaxonomyPhysics,
		Rules:    physicsRules,
	},
	core.TaxonomyICT: {
		Taxonomy: core.TaxonomyICT,
		Rules:    ictRules,
		Chapters: ictChapters,
		Pattern:  chapterNumberPattern(ictChapterMarkers),
	},
}
