package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
)

// Oracle issues a single self-contained prompt to the generative-text
// backend. Calls are stateless; no conversation memory is kept.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SpeechToText transcribes an audio file in a single shot
type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Client wraps a Gemini client handle. It is constructed once and passed
// by reference into every component that issues oracle calls; there is no
// ambient credential state.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client for the given API key and model
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New(errors.CodeInvalidArg, "Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to create Gemini client")
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Generate sends one text prompt and returns the raw response text
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "generate call failed")
	}

	text := result.Text()
	if text == "" {
		return "", errors.New(errors.CodeExternal, "empty response from model")
	}
	return text, nil
}

// Transcribe uploads an audio file and asks the model for a transcription
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := c.client.Files.UploadFromPath(ctx, audioPath, &genai.UploadFileConfig{
		MIMEType: "audio/mp3",
	})
	if err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, fmt.Sprintf("failed to upload audio file %s", audioPath))
	}

	parts := []*genai.Part{
		genai.NewPartFromText("Transcribe the following audio file accurately."),
		genai.NewPartFromURI(file.URI, file.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "transcription call failed")
	}

	text := result.Text()
	if text == "" {
		return "", errors.New(errors.CodeExternal, "empty transcription from model")
	}
	return text, nil
}
