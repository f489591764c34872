// README: Gemini completion client via Google's official SDK.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements Completer using Google's Gemini models.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient initializes a Gemini client for opts.Model (or the default).
func NewGeminiClient(ctx context.Context, opts Options) (*GeminiClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	name := opts.Model
	if name == "" {
		name = defaultGeminiModel
	}
	model := client.GenerativeModel(name)

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	if opts.Temperature > 0 {
		model.SetTemperature(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Close cleans up the underlying client resources.
func (c *GeminiClient) Close() {
	c.client.Close()
}

// Complete prepends the system instruction to the user prompt and returns the
// concatenated text parts of the first candidate.
func (c *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	fullPrompt := fmt.Sprintf("%s\n\n%s", system, user)

	resp, err := c.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var textParts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		textParts = append(textParts, string(txt))
	}
	if len(textParts) == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return strings.Join(textParts, "\n"), nil
}
