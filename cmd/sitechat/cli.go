package main

import (
	"time"

	"github.com/fwojciec/sitechat/gemini"
	"github.com/fwojciec/sitechat/http"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL string `arg:"" optional:"" help:"Website URL to chat about (prompted for when omitted)"`

	APIKey      string        `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model       string        `env:"SITECHAT_MODEL" default:"${model}" help:"Gemini model"`
	Temperature float32       `default:"0.7" help:"Sampling temperature"`
	MaxTokens   int32         `name:"max-tokens" default:"500" help:"Maximum tokens per answer"`
	History     int           `default:"10" help:"History entries included in each prompt (at most 10)"`
	Timeout     time.Duration `default:"10s" help:"Page fetch timeout"`
	Retries     int           `default:"2" help:"Retries for failed page fetches"`
	UserAgent   string        `name:"user-agent" default:"${user_agent}" help:"User-Agent header for page fetches"`
	Transcript  string        `type:"path" help:"Write a markdown transcript of the session to this file"`
	Debug       bool          `help:"Log diagnostics to stderr"`
}

// vars supplies defaults that live in other packages.
func vars() map[string]string {
	return map[string]string{
		"model":      gemini.DefaultModel,
		"user_agent": http.DefaultUserAgent,
	}
}
