package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/gemini"
	"github.com/fwojciec/sitechat/goquery"
	"github.com/fwojciec/sitechat/http"
	sitechatslog "github.com/fwojciec/sitechat/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Nil values are replaced by the
	// production implementations in Run.
	Fetcher      sitechat.Fetcher
	Extractor    sitechat.Extractor
	Completer    sitechat.Completer
	TokenCounter sitechat.TokenCounter

	// Now returns the session start time.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Dependencies holds the services and configuration for a chat session.
type Dependencies struct {
	Ctx          context.Context
	Stdin        *bufio.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Fetcher      sitechat.Fetcher
	Extractor    sitechat.Extractor
	Completer    sitechat.Completer
	TokenCounter sitechat.TokenCounter
	Now          func() time.Time
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitechat"),
		kong.Description("Chat about the content of a single web page."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars(vars()),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:          ctx,
		Stdin:        bufio.NewReader(stdin),
		Stdout:       stdout,
		Stderr:       stderr,
		Logger:       newLogger(stderr, cli.Debug),
		Fetcher:      m.Fetcher,
		Extractor:    m.Extractor,
		Completer:    m.Completer,
		TokenCounter: m.TokenCounter,
		Now:          m.Now,
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	if deps.Completer == nil {
		if cli.APIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return sitechat.Errorf(sitechat.EINVALID, "GEMINI_API_KEY not set")
		}

		client, err := gemini.NewClient(ctx, cli.APIKey)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		deps.Completer = gemini.NewCompleter(client, cli.Model)
	}
	deps.Completer = sitechatslog.NewLoggingCompleter(deps.Completer, deps.Logger)

	if deps.Fetcher == nil {
		deps.Fetcher = http.NewFetcher(
			http.WithTimeout(cli.Timeout),
			http.WithUserAgent(cli.UserAgent),
		)
	}
	deps.Fetcher = sitechatslog.NewLoggingFetcher(deps.Fetcher, deps.Logger)
	defer deps.Fetcher.Close()

	if deps.Extractor == nil {
		deps.Extractor = goquery.NewExtractor()
	}
	deps.Extractor = sitechatslog.NewLoggingExtractor(deps.Extractor, deps.Logger)

	if deps.TokenCounter == nil {
		tc, err := gemini.NewTokenCounter(cli.Model)
		if err != nil {
			deps.Logger.Debug("token counting disabled", "model", cli.Model, "err", err)
		} else {
			deps.TokenCounter = tc
		}
	}

	return cli.Chat(deps)
}

// newLogger returns a stderr logger when debug is set and a discarding
// logger otherwise.
func newLogger(stderr io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
