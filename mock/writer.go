package mock

import "github.com/fwojciec/sitechat"

var _ sitechat.TranscriptWriter = (*TranscriptWriter)(nil)

// TranscriptWriter is a mock implementation of sitechat.TranscriptWriter.
type TranscriptWriter struct {
	WriteExchangeFn func(question, answer string) error
	CloseFn         func() error
}

func (w *TranscriptWriter) WriteExchange(question, answer string) error {
	return w.WriteExchangeFn(question, answer)
}

func (w *TranscriptWriter) Close() error {
	return w.CloseFn()
}
