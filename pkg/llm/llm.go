package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Complete(ctx context.Context, messages []llms.ChatMessage) (string, error)
	ModelName() string
}

// ProviderError is a failure reported by the model provider itself (non-2xx
// status, empty completion) as opposed to a transport failure.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider http %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
