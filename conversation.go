package sitechat

import "context"

// FallbackAnswer is the reply the model is instructed to give when the
// grounding context does not contain the answer.
const FallbackAnswer = "The requested information is not available on the provided website."

// ErrorAnswerPrefix marks an Answer that reports a failed completion.
const ErrorAnswerPrefix = "Error generating response: "

// Conversation answers questions grounded in the content of one page.
type Conversation interface {
	// Answer returns the reply to question. It never fails: provider errors
	// are reported in the returned text, prefixed with ErrorAnswerPrefix.
	Answer(ctx context.Context, question string) string

	// Clear forgets earlier exchanges. The grounding context is kept.
	Clear()
}

// TranscriptWriter records the exchanges of a session.
type TranscriptWriter interface {
	// WriteExchange records one question and its answer.
	WriteExchange(question, answer string) error

	// Close finishes the transcript.
	Close() error
}
