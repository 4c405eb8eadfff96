package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/chat"
	"github.com/fwojciec/sitechat/fs"
	"github.com/fwojciec/sitechat/http"
)

// EmptyContextWarning is shown when nothing usable was extracted from the page.
const EmptyContextWarning = "warning: no content could be extracted from the page; every question will get the fallback answer"

// Chat loads the page and runs an interactive session over it.
func (c *CLI) Chat(deps *Dependencies) error {
	raw := c.URL
	if strings.TrimSpace(raw) == "" {
		line, err := promptURL(deps.Ctx, deps.Stdin, deps.Stdout)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintln(deps.Stdout, "\nInterrupted.")
			return err
		} else if err != nil {
			return sitechat.Errorf(sitechat.EINVALID, "URL required")
		}
		raw = line
	}

	pageURL, err := NormalizeURL(raw)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetching content from %s...\n", pageURL)
	logf := func(format string, args ...any) {
		deps.Logger.Warn(fmt.Sprintf(format, args...))
	}
	html, err := http.FetchWithRetry(deps.Ctx, deps.Fetcher, pageURL, http.RetryDelays(c.Retries), logf)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorReason(err))
		return err
	}

	record, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}
	printSummary(deps.Stdout, record.Summary())

	grounding := sitechat.FormatContext(record)
	if grounding == "" {
		fmt.Fprintln(deps.Stderr, EmptyContextWarning)
		deps.Logger.Warn("empty grounding context", "url", pageURL)
	}
	printContextSize(deps, grounding)

	conv := chat.NewConversation(grounding, deps.Completer,
		chat.WithTemperature(c.Temperature),
		chat.WithMaxOutputTokens(c.MaxTokens),
		chat.WithHistoryWindow(c.History),
		chat.WithLogger(deps.Logger),
	)

	opts := []chat.SessionOption{
		chat.WithSource(pageURL),
		chat.WithSessionLogger(deps.Logger),
	}
	if c.Transcript != "" {
		header := fs.NewTranscriptHeader(pageURL, record.Title, grounding, deps.Now())
		transcript, err := fs.NewTranscriptWriter(c.Transcript, header)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot create transcript: %s\n", sitechat.ErrorReason(err))
			return err
		}
		defer func() {
			if err := transcript.Close(); err != nil {
				fmt.Fprintf(deps.Stderr, "error: cannot save transcript: %s\n", err)
				return
			}
			fmt.Fprintf(deps.Stdout, "Transcript saved to %s\n", transcript.Path())
		}()
		opts = append(opts, chat.WithTranscript(transcript))
	}

	fmt.Fprintln(deps.Stdout)
	return chat.NewSession(conv, deps.Stdin, deps.Stdout, opts...).Run(deps.Ctx)
}

// URL prompt messages.
const (
	URLPrompt      = "Enter website URL: "
	URLEmptyNotice = "Please enter a valid URL."
)

// promptURL asks for a URL until a non-empty line is entered. It fails on end
// of input or when ctx is done.
func promptURL(ctx context.Context, r *bufio.Reader, w io.Writer) (string, error) {
	for {
		fmt.Fprint(w, URLPrompt)
		line, err := readLine(ctx, r)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(w, URLEmptyNotice)
	}
}

// readLine reads one trimmed line from r without blocking past ctx. Input
// that ends without a newline still counts as a line.
func readLine(ctx context.Context, r *bufio.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			ch <- result{err: err}
			return
		}
		ch <- result{line: strings.TrimSpace(line)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

func printSummary(w io.Writer, s sitechat.Summary) {
	fmt.Fprintln(w, "\nScraped content summary:")
	fmt.Fprintf(w, "  Title: %s\n", s.Title)
	fmt.Fprintf(w, "  Description: %s\n", s.Description)
	fmt.Fprintf(w, "  Main content: %d characters\n", s.MainContentLen)
	fmt.Fprintf(w, "  Headings: %d\n", s.HeadingCount)
	fmt.Fprintf(w, "  Links: %d\n", s.LinkCount)
	fmt.Fprintf(w, "  Full text: %d characters\n", s.FullTextLen)
}

func printContextSize(deps *Dependencies, grounding string) {
	chars := utf8.RuneCountInString(grounding)
	if deps.TokenCounter == nil || grounding == "" {
		fmt.Fprintf(deps.Stdout, "  Context: %d characters\n", chars)
		return
	}
	tokens, err := deps.TokenCounter.CountTokens(deps.Ctx, grounding)
	if err != nil {
		deps.Logger.Debug("token count failed", "err", err)
		fmt.Fprintf(deps.Stdout, "  Context: %d characters\n", chars)
		return
	}
	fmt.Fprintf(deps.Stdout, "  Context: %d characters, %d tokens\n", chars, tokens)
}
