package ai

import (
	"strings"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// DefaultChunkSize is the word count per chunk when none is configured
const DefaultChunkSize = 1000

// SplitIntoChunks splits transcript text into non-overlapping windows of
// at most size words. Slicing is purely positional; sentence boundaries
// are not considered. Empty input yields zero chunks, which callers must
// handle before issuing any oracle calls.
func SplitIntoChunks(text string, size int) []model.Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	total := (len(words) + size - 1) / size
	chunks := make([]model.Chunk, 0, total)
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, model.Chunk{
			Index: len(chunks),
			Total: total,
			Text:  strings.Join(words[i:end], " "),
		})
	}
	return chunks
}
