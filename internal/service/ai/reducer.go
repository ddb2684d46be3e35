package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// Reducer combines per-chunk partial results into final outputs
type Reducer struct {
	oracle Oracle
}

// NewReducer creates a Reducer backed by the given oracle
func NewReducer(oracle Oracle) *Reducer {
	return &Reducer{oracle: oracle}
}

// CombinedResult is the output of the reduce stage
type CombinedResult struct {
	Summary    string
	Highlights []string
	KeyMoments []model.KeyMoment
}

// Combine merges partial results in chunk order. The overall summary is a
// second-order generation over the partial summaries, not a mechanical
// merge. Key-moment timestamps are chunk-level approximations: the total
// caption duration divided evenly across the partial-result groups.
func (r *Reducer) Combine(ctx context.Context, partials []model.PartialResult, source *model.TranscriptSource) (*CombinedResult, error) {
	if len(partials) == 0 {
		return nil, errors.New(errors.CodeInvalidArg, "no partial results to combine")
	}

	summaries := make([]string, 0, len(partials))
	for _, partial := range partials {
		summaries = append(summaries, partial.Summary)
	}

	prompt := fmt.Sprintf(
		"Create an overall concise summary of the entire YouTube video based on these partial summaries:\n\n%s",
		strings.Join(summaries, "\n\n"))
	summary, err := r.oracle.Generate(ctx, prompt)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed, "overall summary failed")
	}

	var highlights []string
	for _, partial := range partials {
		highlights = append(highlights, partial.Highlights...)
	}

	return &CombinedResult{
		Summary:    strings.TrimSpace(summary),
		Highlights: highlights,
		KeyMoments: reconcileKeyMoments(partials, source),
	}, nil
}

// reconcileKeyMoments flattens per-chunk moments, assigning approximate
// timestamps when the source carries per-segment timing. Every moment in
// chunk i gets the single offset i*(totalDuration/chunkCount); these
// labels are synthetic, not ground truth. Audio transcriptions have no
// timing, so their labels stay empty.
func reconcileKeyMoments(partials []model.PartialResult, source *model.TranscriptSource) []model.KeyMoment {
	hasMoments := false
	for _, partial := range partials {
		if len(partial.KeyMoments) > 0 {
			hasMoments = true
			break
		}
	}

	if !source.HasTimestamps() || !hasMoments {
		var moments []model.KeyMoment
		for _, partial := range partials {
			moments = append(moments, partial.KeyMoments...)
		}
		return moments
	}

	chunkDuration := source.TotalDuration() / float64(len(partials))
	var moments []model.KeyMoment
	for idx, partial := range partials {
		offset := float64(idx) * chunkDuration
		label := fmt.Sprintf("%.1fs", offset)
		for _, moment := range partial.KeyMoments {
			moments = append(moments, model.KeyMoment{
				Timestamp: label,
				Moment:    moment.Moment,
			})
		}
	}
	return moments
}
