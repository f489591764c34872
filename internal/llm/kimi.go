// README: Kimi (Moonshot) chat-completions client over the OpenAI-compatible API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultKimiBaseURL = "https://api.moonshot.cn/v1"
	defaultKimiModel   = "moonshot-v1-auto"
)

// kimiHTTPClient is used for all Kimi requests; the 60s timeout guards against
// stalled connections while context cancellation is still honoured via
// NewRequestWithContext.
var kimiHTTPClient = &http.Client{Timeout: 60 * time.Second}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// KimiClient talks to the Moonshot chat-completions endpoint.
type KimiClient struct {
	opts Options
}

// NewKimiClient returns a client with defaults filled in for any unset option.
func NewKimiClient(opts Options) *KimiClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultKimiBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultKimiModel
	}
	return &KimiClient{opts: opts}
}

// Complete sends the system instruction and user prompt as one chat turn and
// returns the reply text verbatim.
func (c *KimiClient) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("kimi: marshal request: %w", err)
	}

	url := strings.TrimRight(c.opts.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("kimi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := kimiHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("kimi: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("kimi: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("kimi: unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("kimi: api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("kimi: API returned empty choices array (raw: %s)", body)
	}
	return cr.Choices[0].Message.Content, nil
}
