package ai

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIntoChunks(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		size      int
		wantCount int
	}{
		{
			name:      "empty text yields zero chunks",
			text:      "",
			size:      1000,
			wantCount: 0,
		},
		{
			name:      "whitespace-only text yields zero chunks",
			text:      "   \n\t  ",
			size:      1000,
			wantCount: 0,
		},
		{
			name:      "fits in one chunk",
			text:      "one two three",
			size:      1000,
			wantCount: 1,
		},
		{
			name:      "exact multiple of chunk size",
			text:      "a b c d e f",
			size:      3,
			wantCount: 2,
		},
		{
			name:      "final chunk shorter",
			text:      "a b c d e f g",
			size:      3,
			wantCount: 3,
		},
		{
			name:      "zero size falls back to default",
			text:      "one two three",
			size:      0,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitIntoChunks(tt.text, tt.size)
			require.Len(t, chunks, tt.wantCount)

			for i, chunk := range chunks {
				assert.Equal(t, i, chunk.Index)
				assert.Equal(t, tt.wantCount, chunk.Total)
			}
		})
	}
}

func TestSplitIntoChunks_Deterministic(t *testing.T) {
	words := make([]string, 0, 2500)
	for i := 0; i < 2500; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}
	text := strings.Join(words, " ")

	first := SplitIntoChunks(text, 1000)
	second := SplitIntoChunks(text, 1000)
	assert.Equal(t, first, second)

	require.Len(t, first, 3)
	assert.Len(t, strings.Fields(first[0].Text), 1000)
	assert.Len(t, strings.Fields(first[1].Text), 1000)
	assert.Len(t, strings.Fields(first[2].Text), 500)
}

func TestSplitIntoChunks_Reconstruction(t *testing.T) {
	// Concatenating all chunks reproduces the whitespace-normalized input
	text := "  the   quick\nbrown\t\tfox jumps over the lazy dog  "
	chunks := SplitIntoChunks(text, 3)

	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, chunk.Text)
	}
	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(parts, " "))
}
