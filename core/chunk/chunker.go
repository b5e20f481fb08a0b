// Package chunk splits record text into word-bounded chunks for embedding.
// Words stand in for tokens. Lines are kept whole when they fit so a
// question is not split from its own text.
package chunk

import "strings"

// Chunker splits text into chunks of at most ChunkSize words.
type Chunker struct {
	ChunkSize int // number of words per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to 512 if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk packs whole lines into chunks; a line longer than ChunkSize words
// is split on word boundaries. Blank lines are dropped.
func (c *Chunker) Chunk(text string) []string {
	var (
		chunks  []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		if len(current)+len(words) > c.ChunkSize {
			flush()
		}
		for len(words) > c.ChunkSize {
			chunks = append(chunks, strings.Join(words[:c.ChunkSize], " "))
			words = words[c.ChunkSize:]
		}
		current = append(current, words...)
	}
	flush()
	return chunks
}
