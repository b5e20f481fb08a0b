package reshape

import (
	"encoding/json"
	"strconv"
)

// Field names accepted in source exports, in priority order.
var (
	ChapterKeys  = []string{"chapter_name", "chapter"}
	StimulusKeys = []string{"context", "stimulus"}
)

const (
	subQuestionsKey = "questions"
	typeKey         = "type"
	questionKey     = "question"
	answerKey       = "answer"
)

// Object returns v as a JSON object, or nil when it is anything else.
func Object(v any) map[string]any {
	obj, _ := v.(map[string]any)
	return obj
}

// Text returns the textual form of a JSON scalar. Objects, arrays and
// null have no text and yield "".
func Text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// FirstText returns the first non-empty text found under keys, in order.
func FirstText(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := Text(obj[k]); s != "" {
			return s
		}
	}
	return ""
}
