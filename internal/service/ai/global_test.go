package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGlobalEnricher_Enrich(t *testing.T) {
	oracle := new(mockOracle)
	oracle.On("Generate", mock.Anything, mock.MatchedBy(promptStarting("List the main topics"))).
		Return("go, testing, , databases", nil)
	oracle.On("Generate", mock.Anything, mock.MatchedBy(promptStarting("Extract notable quotes"))).
		Return("1. \"Ship it\"\n2. \"Keep it simple\"", nil)
	oracle.On("Generate", mock.Anything, mock.MatchedBy(promptStarting("Analyze the overall sentiment"))).
		Return("Positive", nil)
	oracle.On("Generate", mock.Anything, mock.MatchedBy(promptStarting("Who is the host"))).
		Return("Jane Doe", nil)
	oracle.On("Generate", mock.Anything, mock.MatchedBy(promptStarting("Who is the guest"))).
		Return("None", nil)

	enricher := NewGlobalEnricher(oracle)
	result, err := enricher.Enrich(context.Background(), "the full transcript")
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "testing", "databases"}, result.Topics)
	assert.Equal(t, []string{"Ship it", "Keep it simple"}, result.Quotes)
	assert.Equal(t, model.SentimentPositive, result.Sentiment)
	require.NotNil(t, result.HostName)
	assert.Equal(t, "Jane Doe", *result.HostName)
	assert.Nil(t, result.GuestName)

	// the global pass always sees the full, unchunked transcript
	for _, call := range oracle.Calls {
		assert.Contains(t, call.Arguments.String(1), "the full transcript")
	}
}

func TestGlobalEnricher_SentimentAlwaysCoerced(t *testing.T) {
	for _, response := range []string{"positive", "I would say it is upbeat", "NEGATIVE!", ""} {
		oracle := new(mockOracle)
		oracle.On("Generate", mock.Anything, mock.MatchedBy(promptStarting("Analyze the overall sentiment"))).
			Return(response, nil)
		oracle.On("Generate", mock.Anything, mock.Anything).Return("None", nil)

		enricher := NewGlobalEnricher(oracle)
		result, err := enricher.Enrich(context.Background(), "text")
		require.NoError(t, err)

		assert.Contains(t, []model.Sentiment{
			model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral,
		}, result.Sentiment)
	}
}

func TestGlobalEnricher_OracleFailure(t *testing.T) {
	oracle := new(mockOracle)
	oracle.On("Generate", mock.Anything, mock.Anything).Return("", assert.AnError)

	enricher := NewGlobalEnricher(oracle)
	_, err := enricher.Enrich(context.Background(), "text")

	require.Error(t, err)
	assert.Equal(t, errors.CodeEnrichmentFailed, errors.Code(err))
}

func promptStarting(prefix string) func(string) bool {
	return func(prompt string) bool {
		return strings.HasPrefix(prompt, prefix)
	}
}
