package capture

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
)

// Sink is an output backend for captured logins. The in-process callback
// path is the product surface; stdout serves the formscan CLI and debugging.
type Sink interface {
	Send(login CapturedLogin) error
	Close() error
}

// CallbackFunc receives captured logins in-process, zero serialisation.
type CallbackFunc func(login CapturedLogin)

type callbackSink struct {
	fn CallbackFunc
}

// NewCallbackSink wraps a function as a Sink.
func NewCallbackSink(fn CallbackFunc) Sink {
	return &callbackSink{fn: fn}
}

func (c *callbackSink) Send(login CapturedLogin) error {
	if c.fn != nil {
		c.fn(login)
	}
	return nil
}

func (c *callbackSink) Close() error { return nil }

type stdoutSink struct {
	enc *json.Encoder
}

// NewStdoutSink creates a JSON-lines sink. A nil writer means os.Stdout.
func NewStdoutSink(w io.Writer) Sink {
	if w == nil {
		w = os.Stdout
	}
	return &stdoutSink{enc: json.NewEncoder(w)}
}

func (s *stdoutSink) Send(login CapturedLogin) error { return s.enc.Encode(login) }

func (s *stdoutSink) Close() error { return nil }

// router fans a login out to every sink. A failing or panicking sink is
// logged and skipped; it never aborts delivery to the rest.
type router struct {
	sinks  []Sink
	logger *slog.Logger
}

func newRouter(logger *slog.Logger, sinks ...Sink) *router {
	return &router{sinks: sinks, logger: logger}
}

func (r *router) send(login CapturedLogin) {
	for _, s := range r.sinks {
		r.sendOne(s, login)
	}
}

func (r *router) sendOne(s Sink, login CapturedLogin) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("capture: sink panicked", "panic", rec)
		}
	}()
	if err := s.Send(login); err != nil {
		r.logger.Error("capture: sink send failed", "error", err)
	}
}

func (r *router) close() {
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			r.logger.Error("capture: sink close failed", "error", err)
		}
	}
	r.sinks = nil
}
