package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conversation() []sitechat.Message {
	return []sitechat.Message{
		{Role: sitechat.RoleSystem, Content: "Use ONLY the website content."},
		{Role: sitechat.RoleUser, Content: "What does Acme sell?"},
		{Role: sitechat.RoleAssistant, Content: "Anvils."},
		{Role: sitechat.RoleUser, Content: "Where are they based?"},
	}
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("system message becomes system instruction", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(conversation(), sitechat.CompletionOptions{})

		require.NotNil(t, config.SystemInstruction)
		require.Len(t, config.SystemInstruction.Parts, 1)
		assert.Equal(t, "Use ONLY the website content.", config.SystemInstruction.Parts[0].Text)
	})

	t.Run("sets temperature and output limit", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(conversation(), sitechat.CompletionOptions{Temperature: 0.7, MaxOutputTokens: 500})

		require.NotNil(t, config.Temperature)
		assert.InDelta(t, 0.7, *config.Temperature, 0.001)
		assert.Equal(t, int32(500), config.MaxOutputTokens)
	})

	t.Run("disables thinking so the output limit covers the answer", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(conversation(), sitechat.CompletionOptions{MaxOutputTokens: 500})

		require.NotNil(t, config.ThinkingConfig)
		require.NotNil(t, config.ThinkingConfig.ThinkingBudget)
		assert.Equal(t, int32(0), *config.ThinkingConfig.ThinkingBudget)
		assert.False(t, config.ThinkingConfig.IncludeThoughts)
	})

	t.Run("no system message leaves instruction unset", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig([]sitechat.Message{{Role: sitechat.RoleUser, Content: "Hi"}}, sitechat.CompletionOptions{})

		assert.Nil(t, config.SystemInstruction)
	})
}

func TestBuildContents(t *testing.T) {
	t.Parallel()

	t.Run("maps roles and skips system", func(t *testing.T) {
		t.Parallel()

		contents := gemini.BuildContents(conversation())

		require.Len(t, contents, 3)
		assert.Equal(t, "user", contents[0].Role)
		assert.Equal(t, "What does Acme sell?", contents[0].Parts[0].Text)
		assert.Equal(t, "model", contents[1].Role)
		assert.Equal(t, "Anvils.", contents[1].Parts[0].Text)
		assert.Equal(t, "user", contents[2].Role)
		assert.Equal(t, "Where are they based?", contents[2].Parts[0].Text)
	})

	t.Run("only system message yields nothing", func(t *testing.T) {
		t.Parallel()

		contents := gemini.BuildContents([]sitechat.Message{{Role: sitechat.RoleSystem, Content: "x"}})

		assert.Empty(t, contents)
	})
}

func TestCompleter_Complete_RequiresUserMessage(t *testing.T) {
	t.Parallel()

	c := gemini.NewCompleter(nil, "") // nil client ok, no request is made

	_, err := c.Complete(context.Background(), []sitechat.Message{{Role: sitechat.RoleSystem, Content: "x"}}, sitechat.CompletionOptions{})

	require.Error(t, err)
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}

func TestNewCompleter_DefaultModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gemini.DefaultModel, gemini.NewCompleter(nil, "").Model())
	assert.Equal(t, "gemini-2.0-flash", gemini.NewCompleter(nil, "gemini-2.0-flash").Model())
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewClient(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}
