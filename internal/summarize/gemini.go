package summarize

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// probePrompt is the fixed request used to verify an API key.
const probePrompt = "Hello, this is a test. Please respond with 'API key works!'"

// Client calls the Gemini API with caller-supplied credentials. The key
// arrives with each request, so a fresh genai client is built per call.
type Client struct {
	model string
}

// NewClient creates a Gemini client for the given model name.
func NewClient(model string) *Client {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{model: model}
}

// Summarize sends a prompt and returns the generated text. The remote call
// is a single atomic request; service errors come back with their message
// intact so callers can display them.
func (c *Client) Summarize(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("missing API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return text, nil
}

// Regenerate rebuilds the prompt from an existing transcript and requests a
// fresh summary. It bypasses the pipeline entirely and never touches job
// state; the caller decides what to do with the result.
func (c *Client) Regenerate(ctx context.Context, apiKey, transcript string, length Length, format Format) (string, error) {
	prompt, err := BuildPrompt(transcript, length, format)
	if err != nil {
		return "", err
	}
	return c.Summarize(ctx, apiKey, prompt)
}

// TestKey sends the probe prompt and returns the service's response text.
func (c *Client) TestKey(ctx context.Context, apiKey string) (string, error) {
	return c.Summarize(ctx, apiKey, probePrompt)
}
