// Package extract implements the Extractor interface.
// Exports are usually pasted JSON, but some arrive as saved web pages with
// the JSON embedded. The extractor finds that payload:
//  1. A body that is valid JSON is returned as is.
//  2. A body that starts with < is parsed as HTML and the first candidate
//     element whose text is valid JSON wins.
//  3. Anything else is returned unchanged and fails to parse downstream.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// candidateSelectors are searched in priority order.
var candidateSelectors = []string{
	`script[type="application/json"]`,
	`script[type="application/ld+json"]`,
	"pre",
	"textarea",
	"code",
}

// PayloadExtractor pulls a JSON document out of raw input.
type PayloadExtractor struct{}

// New creates a PayloadExtractor.
func New() *PayloadExtractor {
	return &PayloadExtractor{}
}

// Extract returns the JSON payload of body. When no valid JSON is found
// the body is returned unchanged, so the caller reports it as malformed
// input.
func (e *PayloadExtractor) Extract(body string) (string, error) {
	if json.Valid([]byte(body)) {
		return body, nil
	}
	if !strings.HasPrefix(strings.TrimSpace(body), "<") {
		return body, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range candidateSelectors {
		var payload string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if isPayload(text) {
				payload = text
				return false
			}
			return true
		})
		if payload != "" {
			return payload, nil
		}
	}
	return body, nil
}

// isPayload reports whether text is a JSON object or array.
func isPayload(text string) bool {
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		return false
	}
	return json.Valid([]byte(text))
}
