package sitechat

import "context"

// Role identifies the author of a Message.
type Role string

// Message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a prompt.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions tunes a single completion call.
type CompletionOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Completer generates text from an ordered list of messages.
type Completer interface {
	// Complete sends messages to the model and returns the generated text.
	// Messages are one system directive, then alternating user/assistant
	// history, then a trailing user question.
	// Returns EPROVIDER when the model call fails.
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}
