package ai

import (
	"context"
	"fmt"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// GlobalResult holds the full-transcript enrichment outputs
type GlobalResult struct {
	Topics    []string
	Quotes    []string
	Sentiment model.Sentiment
	HostName  *string
	GuestName *string
}

// GlobalEnricher runs the unchunked enrichment pass over the full
// transcript text. It runs after reduction regardless of chunk count.
type GlobalEnricher struct {
	oracle Oracle
}

// NewGlobalEnricher creates a GlobalEnricher backed by the given oracle
func NewGlobalEnricher(oracle Oracle) *GlobalEnricher {
	return &GlobalEnricher{oracle: oracle}
}

// Enrich issues the topics, quotes, sentiment and host/guest prompts over
// the full transcript. Any oracle failure aborts the pass.
func (g *GlobalEnricher) Enrich(ctx context.Context, transcript string) (*GlobalResult, error) {
	topicsText, err := g.oracle.Generate(ctx, fmt.Sprintf(
		"List the main topics discussed in the following YouTube video transcript as a comma-separated list:\n\n%s",
		transcript))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed, "topics generation failed")
	}

	quotesText, err := g.oracle.Generate(ctx, fmt.Sprintf(
		"Extract notable quotes from the following YouTube video transcript as a numbered list:\n\n%s",
		transcript))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed, "quotes generation failed")
	}

	sentimentText, err := g.oracle.Generate(ctx, fmt.Sprintf(
		"Analyze the overall sentiment of the following YouTube video transcript. Respond with only one word: positive, negative, or neutral.\n\n%s",
		transcript))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed, "sentiment generation failed")
	}

	hostText, err := g.oracle.Generate(ctx, fmt.Sprintf(
		"Who is the host in the following YouTube video transcript? If no host is mentioned, respond with 'None'.\n\n%s",
		transcript))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed, "host attribution failed")
	}

	guestText, err := g.oracle.Generate(ctx, fmt.Sprintf(
		"Who is the guest in the following YouTube video transcript? If no guest is mentioned, respond with 'None'.\n\n%s",
		transcript))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEnrichmentFailed, "guest attribution failed")
	}

	return &GlobalResult{
		Topics:    ParseCommaList(topicsText),
		Quotes:    ParseEnumeratedList(quotesText),
		Sentiment: ParseSentiment(sentimentText),
		HostName:  ParsePersonName(hostText, "no host"),
		GuestName: ParsePersonName(guestText, "no guest"),
	}, nil
}
