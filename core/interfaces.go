// Package core defines the shared types and stage interfaces for qbformat.
// The pipeline stages (normalize, classify, reshape, pipeline) are pure
// functions; the stages declared here are the I/O edges around them.
package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Taxonomy selects which subject's chapter naming convention is applied.
type Taxonomy string

const (
	TaxonomyPhysics Taxonomy = "physics"
	TaxonomyICT     Taxonomy = "ict"
)

// Taxonomies lists every supported taxonomy in display order.
var Taxonomies = []Taxonomy{TaxonomyPhysics, TaxonomyICT}

// ParseTaxonomy resolves a mode name (case-insensitive) to a Taxonomy.
func ParseTaxonomy(s string) (Taxonomy, error) {
	switch Taxonomy(strings.ToLower(strings.TrimSpace(s))) {
	case TaxonomyPhysics:
		return TaxonomyPhysics, nil
	case TaxonomyICT:
		return TaxonomyICT, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want physics or ict)", s)
	}
}

// Label returns the upper-case tag used in history labels, e.g. "PHYSICS".
func (t Taxonomy) Label() string {
	return strings.ToUpper(string(t))
}

// OutputRecord is the fixed-schema quiz record. Field order is the
// serialized key order and must not change.
type OutputRecord struct {
	Chapter  string `json:"chapter"`
	Stimulus string `json:"stimulus"`
	QA       string `json:"q_a"`
	AnsA     string `json:"ans_a"`
	QB       string `json:"q_b"`
	AnsB     string `json:"ans_b"`
	QC       string `json:"q_c"`
	AnsC     string `json:"ans_c"`
	QD       string `json:"q_d"`
	AnsD     string `json:"ans_d"`
}

// Slot is one (question, answer) pair of an OutputRecord.
type Slot struct {
	Name     string
	Question string
	Answer   string
}

// Slots returns the four slots in a..d order.
func (r OutputRecord) Slots() []Slot {
	return []Slot{
		{Name: "a", Question: r.QA, Answer: r.AnsA},
		{Name: "b", Question: r.QB, Answer: r.AnsB},
		{Name: "c", Question: r.QC, Answer: r.AnsC},
		{Name: "d", Question: r.QD, Answer: r.AnsD},
	}
}

// Batch is one converted collection handed to a Renderer.
type Batch struct {
	Records     []OutputRecord
	SourceLabel string
	Taxonomy    Taxonomy
	ConvertedAt time.Time
}

// Label returns the "[MODE] <source>" label shared by history and renderers.
func (b Batch) Label() string {
	return fmt.Sprintf("[%s] %s", b.Taxonomy.Label(), b.SourceLabel)
}

// FetchResult holds the raw input text and where it came from.
type FetchResult struct {
	Source      string
	ContentType string
	Body        string
}

// Fetcher retrieves raw input text from a file, stdin, or URL.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Extractor pulls the JSON payload out of a fetched body.
type Extractor interface {
	Extract(body string) (string, error)
}

// Renderer converts a batch of records into a final output format.
type Renderer interface {
	Render(batch Batch) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".pdf").
	Extension() string
}

// Embedder generates a vector embedding for a text input.
type Embedder interface {
	Embed(ctx context.Context, text string, model string) ([]float64, error)
}
