package render

// Markdown renderer.
// Builds an HTML review sheet from the records and converts it to Markdown
// with html-to-markdown, so escaping of user text is handled by the converter.

import (
	"bytes"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/qbformat/core"
)

// MarkdownRenderer produces a human-readable review sheet.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the batch into Markdown.
func (r *MarkdownRenderer) Render(batch core.Batch) ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range reviewNodes(batch) {
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("rendering review HTML: %w", err)
		}
	}

	markdown, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return nil, fmt.Errorf("converting review HTML to markdown: %w", err)
	}
	return []byte(strings.TrimSpace(markdown) + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// reviewNodes lays out the batch: a title, a summary line, then one
// section per record with its stimulus and the four slots as a list.
func reviewNodes(batch core.Batch) []*html.Node {
	nodes := []*html.Node{
		element(atom.H1, text(batch.Label())),
		element(atom.P, text(fmt.Sprintf("%d items", len(batch.Records)))),
	}

	for i, rec := range batch.Records {
		nodes = append(nodes, element(atom.H2, text(fmt.Sprintf("%d. %s", i+1, rec.Chapter))))

		if rec.Stimulus != "" {
			quote := element(atom.Blockquote)
			for _, line := range strings.Split(rec.Stimulus, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				quote.AppendChild(element(atom.P, text(line)))
			}
			nodes = append(nodes, quote)
		}

		list := element(atom.Ul)
		for _, s := range rec.Slots() {
			if s.Question == "" && s.Answer == "" {
				continue
			}
			list.AppendChild(element(atom.Li,
				element(atom.P, element(atom.Strong, text(s.Name+")")), text(" "+s.Question)),
				element(atom.P, element(atom.Em, text("Answer:")), text(" "+s.Answer)),
			))
		}
		if list.FirstChild != nil {
			nodes = append(nodes, list)
		}
	}
	return nodes
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
