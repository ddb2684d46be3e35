package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// defaultWorkers bounds concurrent chunk processing. Oracle calls are
// read-only and independent, but results must be reassembled in chunk
// order before reduction.
const defaultWorkers = 3

// Mapper runs the per-chunk enrichment stage against the oracle
type Mapper struct {
	oracle  Oracle
	workers int
}

// NewMapper creates a Mapper with the default worker count
func NewMapper(oracle Oracle) *Mapper {
	return NewMapperWithWorkers(oracle, defaultWorkers)
}

// NewMapperWithWorkers creates a Mapper with a custom worker count (for testing)
func NewMapperWithWorkers(oracle Oracle, workers int) *Mapper {
	if workers < 1 {
		workers = 1
	}
	return &Mapper{
		oracle:  oracle,
		workers: workers,
	}
}

// ProcessChunks issues the three enrichment prompts for every chunk and
// returns partial results indexed by chunk order. A failed oracle call is
// not retried; it aborts the whole stage because the reduce stage cannot
// proceed with missing partials.
func (m *Mapper) ProcessChunks(ctx context.Context, chunks []model.Chunk) ([]model.PartialResult, error) {
	if len(chunks) == 0 {
		return nil, errors.New(errors.CodeInvalidArg, "no chunks to process")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]model.PartialResult, len(chunks))
	jobs := make(chan model.Chunk)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	workers := m.workers
	if workers > len(chunks) {
		workers = len(chunks)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range jobs {
				partial, err := m.processChunk(ctx, chunk)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
					return
				}
				results[chunk.Index] = *partial
			}
		}()
	}

	for _, chunk := range chunks {
		select {
		case jobs <- chunk:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed, "chunk processing cancelled")
	}
	return results, nil
}

// processChunk runs the summary, highlights and key-moments prompts for
// one chunk. Each prompt states the chunk position so the model produces
// locally coherent output.
func (m *Mapper) processChunk(ctx context.Context, chunk model.Chunk) (*model.PartialResult, error) {
	position := fmt.Sprintf("(%d/%d)", chunk.Index+1, chunk.Total)

	summaryPrompt := fmt.Sprintf(
		"Summarize this part %s of the YouTube video transcript in a concise paragraph:\n\n%s",
		position, chunk.Text)
	summary, err := m.oracle.Generate(ctx, summaryPrompt)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed,
			fmt.Sprintf("partial summary failed for chunk %d", chunk.Index))
	}

	highlightsPrompt := fmt.Sprintf(
		"Extract key highlights from this part %s of the YouTube video transcript as bullet points:\n\n%s",
		position, chunk.Text)
	highlightsText, err := m.oracle.Generate(ctx, highlightsPrompt)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed,
			fmt.Sprintf("partial highlights failed for chunk %d", chunk.Index))
	}

	momentsPrompt := fmt.Sprintf(
		"Extract key moments from this part %s of the YouTube video transcript. Format as: moment description\n\n%s",
		position, chunk.Text)
	momentsText, err := m.oracle.Generate(ctx, momentsPrompt)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed,
			fmt.Sprintf("partial key moments failed for chunk %d", chunk.Index))
	}

	// Timestamps are assigned later by the reduce stage; labels stay empty here
	var moments []model.KeyMoment
	for _, line := range ParseBulletList(momentsText) {
		moments = append(moments, model.KeyMoment{Timestamp: "", Moment: line})
	}

	return &model.PartialResult{
		ChunkIndex: chunk.Index,
		Summary:    strings.TrimSpace(summary),
		Highlights: ParseBulletList(highlightsText),
		KeyMoments: moments,
	}, nil
}
