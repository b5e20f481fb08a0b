package render

// Embeddings renderer.
// Embeds each record's text, chunked, through an Ollama-compatible
// embeddings API so the question bank can be loaded into a vector index.
// Output is a human-readable .embeddings.txt file.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/chunk"
)

const (
	DefaultOllamaURL = "http://localhost:11434/api/embeddings"
	embeddingTimeout = 60 * time.Second
)

// OllamaEmbedder calls an Ollama-compatible /api/embeddings endpoint.
type OllamaEmbedder struct {
	URL    string
	client *http.Client
}

// NewOllamaEmbedder creates an OllamaEmbedder; an empty url uses DefaultOllamaURL.
func NewOllamaEmbedder(url string) *OllamaEmbedder {
	if url == "" {
		url = DefaultOllamaURL
	}
	return &OllamaEmbedder{
		URL:    url,
		client: &http.Client{Timeout: embeddingTimeout},
	}
}

// ollamaRequest is the request body for the Ollama embeddings API.
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaResponse is the response body from the Ollama embeddings API.
type ollamaResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed returns the embedding vector for text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string, model string) ([]float64, error) {
	bodyBytes, err := json.Marshal(ollamaRequest{Model: model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embeddings API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embeddings API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding embeddings response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("embeddings API returned an empty vector")
	}
	return out.Embedding, nil
}

// EmbeddingsRenderer generates embeddings for every record.
type EmbeddingsRenderer struct {
	Model     string
	ChunkSize int
	embedder  core.Embedder
}

// NewEmbeddingsRenderer creates an EmbeddingsRenderer.
func NewEmbeddingsRenderer(embedder core.Embedder, model string, chunkSize int) *EmbeddingsRenderer {
	return &EmbeddingsRenderer{
		Model:     model,
		ChunkSize: chunkSize,
		embedder:  embedder,
	}
}

// Render embeds each record's chunks and writes them with their vectors.
func (r *EmbeddingsRenderer) Render(batch core.Batch) ([]byte, error) {
	chunker := chunk.New(r.ChunkSize)

	var buf strings.Builder
	fmt.Fprintf(&buf, "# source: %s\n", batch.Label())
	fmt.Fprintf(&buf, "# model: %s\n", r.Model)
	fmt.Fprintf(&buf, "# chunk_size: %d\n\n", chunker.ChunkSize)

	ctx := context.Background()
	embedded := 0
	for i, rec := range batch.Records {
		for j, chunkText := range chunker.Chunk(RecordText(rec)) {
			embedding, err := r.embedder.Embed(ctx, chunkText, r.Model)
			if err != nil {
				return nil, fmt.Errorf("embedding record %d chunk %d: %w", i+1, j+1, err)
			}
			embedded++

			fmt.Fprintf(&buf, "--- record %d chunk %d ---\n", i+1, j+1)
			fmt.Fprintf(&buf, "CHAPTER: %s\n", rec.Chapter)
			fmt.Fprintf(&buf, "TEXT:\n%s\n\n", chunkText)

			vecStrs := make([]string, len(embedding))
			for k, v := range embedding {
				vecStrs[k] = fmt.Sprintf("%.4f", v)
			}
			fmt.Fprintf(&buf, "VECTOR:\n[%s]\n\n", strings.Join(vecStrs, ", "))
		}
	}

	if embedded == 0 {
		return nil, fmt.Errorf("no content to embed")
	}
	return []byte(buf.String()), nil
}

// Extension returns the file extension for embeddings output.
func (r *EmbeddingsRenderer) Extension() string {
	return ".embeddings.txt"
}

// RecordText flattens a record into the text that gets embedded.
func RecordText(rec core.OutputRecord) string {
	var b strings.Builder
	b.WriteString(rec.Chapter)
	b.WriteString("\n")
	if rec.Stimulus != "" {
		b.WriteString(rec.Stimulus)
		b.WriteString("\n")
	}
	for _, s := range rec.Slots() {
		if s.Question != "" {
			fmt.Fprintf(&b, "%s) %s\n", s.Name, s.Question)
		}
		if s.Answer != "" {
			fmt.Fprintf(&b, "%s\n", s.Answer)
		}
	}
	return b.String()
}
