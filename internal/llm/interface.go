// README: Completion provider contract shared by the Kimi and Gemini clients.
package llm

import "context"

// Completer is a black-box text-completion service: send a system instruction
// and a user prompt, receive raw text with no formatting guarantee.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Options carries provider configuration explicitly; providers hold no
// ambient process state.
type Options struct {
	APIKey string
	// BaseURL overrides the provider's default endpoint. Ignored by Gemini.
	BaseURL string
	Model   string
	// Temperature of 0 means provider default.
	Temperature float32
	// MaxTokens of 0 means provider default.
	MaxTokens int
}
