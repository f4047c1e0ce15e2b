package answer

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// Both turns are template variables so neither the instruction nor the user
// text is ever parsed as a template.
var chatPrompt = prompts.NewChatPromptTemplate([]prompts.MessageFormatter{
	prompts.NewSystemMessagePromptTemplate("{{.instruction}}", []string{"instruction"}),
	prompts.NewHumanMessagePromptTemplate("{{.user_input}}", []string{"user_input"}),
})

// BuildPrompt returns the two-turn conversation: system instruction, then the
// literal user text.
func BuildPrompt(instruction, userText string) ([]llms.ChatMessage, error) {
	msgs, err := chatPrompt.FormatMessages(map[string]any{
		"instruction": instruction,
		"user_input":  userText,
	})
	if err != nil {
		return nil, fmt.Errorf("format chat prompt: %w", err)
	}
	return msgs, nil
}
