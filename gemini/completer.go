// Package gemini implements sitechat interfaces on top of Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/sitechat"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements sitechat.Completer at compile time.
var _ sitechat.Completer = (*Completer)(nil)

// Completer implements sitechat.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// NewClient creates a Gemini API client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "API key required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EPROVIDER, "create client: %v", err)
	}
	return client, nil
}

// Model returns the model name used for completions.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends the conversation to Gemini and returns the generated text.
func (c *Completer) Complete(ctx context.Context, messages []sitechat.Message, opts sitechat.CompletionOptions) (string, error) {
	contents := BuildContents(messages)
	if len(contents) == 0 {
		return "", sitechat.Errorf(sitechat.EINVALID, "at least one user message required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, BuildConfig(messages, opts))
	if err != nil {
		return "", sitechat.Errorf(sitechat.EPROVIDER, "%v", err)
	}
	if result == nil {
		return "", sitechat.Errorf(sitechat.EPROVIDER, "gemini returned nil result")
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", sitechat.Errorf(sitechat.EPROVIDER, "gemini returned an empty response")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for a completion. System
// messages become the system instruction. Thinking is disabled so the whole
// output budget goes to the answer.
func BuildConfig(messages []sitechat.Message, opts sitechat.CompletionOptions) *genai.GenerateContentConfig {
	temp := opts.Temperature
	budget := int32(0)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: opts.MaxOutputTokens,
		ThinkingConfig:  &genai.ThinkingConfig{ThinkingBudget: &budget},
	}

	var parts []*genai.Part
	for _, m := range messages {
		if m.Role == sitechat.RoleSystem {
			parts = append(parts, &genai.Part{Text: m.Content})
		}
	}
	if len(parts) > 0 {
		config.SystemInstruction = &genai.Content{Parts: parts}
	}
	return config
}

// BuildContents converts user and assistant messages into Gemini contents.
// Assistant messages take the "model" role. System messages are skipped.
func BuildContents(messages []sitechat.Message) []*genai.Content {
	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case sitechat.RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, "user"))
		case sitechat.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, "model"))
		}
	}
	return contents
}
