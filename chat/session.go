package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sitechat"
)

// State is the lifecycle state of a Session.
type State int

// Session states. StateEnded is terminal.
const (
	StateRunning State = iota
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Console messages.
const (
	Farewell         = "Thank you for using sitechat. Goodbye!"
	InterruptMessage = "Interrupted. Goodbye!"
	ClearedMessage   = "Conversation history cleared."
	EmptyInputNotice = "Please enter a question."
	InputPrompt      = "Your question: "
)

// maxLineSize bounds a single line of input.
const maxLineSize = 1 << 20

// Session reads questions line by line and answers them through a
// Conversation until the user quits or input ends.
type Session struct {
	conv       sitechat.Conversation
	in         io.Reader
	out        io.Writer
	source     string
	transcript sitechat.TranscriptWriter
	logger     *slog.Logger

	state  State
	styles styles
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSource names the loaded page in the welcome banner.
func WithSource(source string) SessionOption {
	return func(s *Session) {
		s.source = source
	}
}

// WithTranscript records every answered exchange to w.
func WithTranscript(w sitechat.TranscriptWriter) SessionOption {
	return func(s *Session) {
		s.transcript = w
	}
}

// WithSessionLogger sets the logger. Defaults to discarding all output.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session reading from in and writing to out.
func NewSession(conv sitechat.Conversation, in io.Reader, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		conv:   conv,
		in:     in,
		out:    out,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		styles: newStyles(out),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state of the session.
func (s *Session) State() State {
	return s.state
}

// Run drives the session until it ends. Cancelling ctx ends the session,
// including while a question is being answered.
func (s *Session) Run(ctx context.Context) error {
	s.state = StateRunning

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.welcome()
	lines := readLines(ctx, s.in)

	for s.state == StateRunning {
		if ctx.Err() != nil {
			s.end(InterruptMessage)
			break
		}

		fmt.Fprint(s.out, s.styles.prompt.Render(strings.TrimSpace(InputPrompt))+" ")

		select {
		case <-ctx.Done():
			s.end(InterruptMessage)
		case line, ok := <-lines:
			if !ok {
				s.end(Farewell)
				continue
			}
			s.handle(ctx, line)
		}
	}

	return nil
}

// handle dispatches one line of input. A panic while handling the line is
// reported and the session keeps running.
func (s *Session) handle(ctx context.Context, line string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("session turn failed", "panic", r)
			fmt.Fprintf(s.out, "\n%s %v\n\n", s.styles.err.Render("Error:"), r)
		}
	}()

	input := strings.TrimSpace(line)
	switch strings.ToLower(input) {
	case "exit", "quit":
		s.end(Farewell)
	case "clear":
		s.conv.Clear()
		fmt.Fprintf(s.out, "%s\n\n", s.styles.notice.Render(ClearedMessage))
	case "":
		fmt.Fprintf(s.out, "%s\n\n", s.styles.notice.Render(EmptyInputNotice))
	default:
		s.ask(ctx, input)
	}
}

func (s *Session) ask(ctx context.Context, question string) {
	answer := s.conv.Answer(ctx, question)
	if ctx.Err() != nil {
		s.end(InterruptMessage)
		return
	}

	if strings.HasPrefix(answer, sitechat.ErrorAnswerPrefix) {
		fmt.Fprintf(s.out, "\n%s\n%s\n\n", s.styles.label.Render("Chatbot:"), s.styles.err.Render(answer))
		return
	}
	fmt.Fprintf(s.out, "\n%s\n%s\n\n", s.styles.label.Render("Chatbot:"), answer)

	if s.transcript != nil && !refusing(s.conv) {
		if err := s.transcript.WriteExchange(question, answer); err != nil {
			s.logger.Error("transcript write failed", "err", err)
			fmt.Fprintf(s.out, "%s\n\n", s.styles.err.Render("Could not write transcript: "+err.Error()))
		}
	}
}

// refusing reports whether conv answers without consulting the model.
// Such answers are not recorded in the transcript.
func refusing(conv sitechat.Conversation) bool {
	r, ok := conv.(interface{ Refusing() bool })
	return ok && r.Refusing()
}

func (s *Session) end(message string) {
	s.state = StateEnded
	fmt.Fprintf(s.out, "\n%s\n", s.styles.notice.Render(message))
}

func (s *Session) welcome() {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, s.styles.title.Render("WEBSITE CONTENT CHATBOT"))
	fmt.Fprintln(s.out, rule)
	if s.source != "" {
		fmt.Fprintf(s.out, "\nAsk questions about %s.\n", s.source)
	} else {
		fmt.Fprintln(s.out, "\nAsk questions about the loaded website.")
	}
	fmt.Fprintln(s.out, "\nCommands:")
	fmt.Fprintln(s.out, "  - Type your question and press Enter")
	fmt.Fprintln(s.out, "  - Type 'clear' to clear conversation history")
	fmt.Fprintln(s.out, "  - Type 'exit' or 'quit' to end the session")
	fmt.Fprintln(s.out, "\nExample questions:")
	fmt.Fprintln(s.out, "  - What is this website about?")
	fmt.Fprintln(s.out, "  - What are the main features mentioned?")
	fmt.Fprintln(s.out, "  - What products or services are offered?")
	fmt.Fprintln(s.out, "  - How can I contact them?")
	fmt.Fprintln(s.out, "\n"+rule)
	fmt.Fprintln(s.out)
}

// readLines delivers lines from r until EOF or until ctx is done.
// The channel is closed when reading stops.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	prompt lipgloss.Style
	notice lipgloss.Style
	err    lipgloss.Style
}

// newStyles builds styles for w. Writers that are not terminals get plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		prompt: r.NewStyle().Foreground(lipgloss.Color("14")),
		notice: r.NewStyle().Foreground(lipgloss.Color("11")),
		err:    r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
