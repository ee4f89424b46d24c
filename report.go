package hookfsm

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DiagnosticKind classifies a non-fatal report.
type DiagnosticKind int

const (
	// IllegalTransition is reported when no transition exists between the
	// current state and the requested target.
	IllegalTransition DiagnosticKind = iota
	// UnknownLink is reported when no named link exists from the current state.
	UnknownLink
	// ListenerFailed is reported when a listener returned an error or panicked.
	ListenerFailed
)

func (k DiagnosticKind) String() string {
	switch k {
	case IllegalTransition:
		return "illegal-transition"
	case UnknownLink:
		return "unknown-link"
	case ListenerFailed:
		return "listener-failed"
	default:
		return "unknown"
	}
}

// Diagnostic is an observability event. It never interrupts control flow.
type Diagnostic struct {
	Kind DiagnosticKind

	// State is the current state, or the state owning the failed listener.
	State any

	// Target is the rejected target state (IllegalTransition only).
	Target any

	// Link is the unresolved link name (UnknownLink only).
	Link string

	// Phase is the dispatch phase of the failed listener (ListenerFailed only).
	Phase Phase

	// Err is the listener error (ListenerFailed only).
	Err error
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case IllegalTransition:
		return fmt.Sprintf("no transition exists between %v -> %v", d.State, d.Target)
	case UnknownLink:
		return fmt.Sprintf("there is no transition named '%s' starting from '%v'", d.Link, d.State)
	case ListenerFailed:
		return fmt.Sprintf("%s listener on '%v' failed: %v", d.Phase, d.State, d.Err)
	default:
		return fmt.Sprintf("diagnostic %d", int(d.Kind))
	}
}

// Reporter receives diagnostics from state machines and registries.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

// NopReporter discards all diagnostics.
type NopReporter struct{}

// Report discards the diagnostic.
func (NopReporter) Report(Diagnostic) {}

// ZerologReporter writes diagnostics as structured zerolog events. Rejected
// transitions and unknown links are logged at warn level, listener failures
// at error level.
type ZerologReporter struct {
	logger zerolog.Logger
}

// NewZerologReporter wraps an existing logger.
func NewZerologReporter(logger zerolog.Logger) *ZerologReporter {
	return &ZerologReporter{logger: logger}
}

// NewConsoleReporter creates a reporter with human readable output on stderr.
func NewConsoleReporter() *ZerologReporter {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return NewZerologReporter(zerolog.New(output).With().Timestamp().Logger())
}

// Report logs the diagnostic.
func (z *ZerologReporter) Report(d Diagnostic) {
	var event *zerolog.Event
	if d.Kind == ListenerFailed {
		event = z.logger.Error().Err(d.Err).Stringer("phase", d.Phase)
	} else {
		event = z.logger.Warn()
	}

	event = event.Stringer("kind", d.Kind).Str("state", fmt.Sprintf("%v", d.State))
	if d.Target != nil {
		event = event.Str("target", fmt.Sprintf("%v", d.Target))
	}
	if d.Link != "" {
		event = event.Str("link", d.Link)
	}
	event.Msg(d.String())
}

// Logger returns the underlying zerolog.Logger.
func (z *ZerologReporter) Logger() zerolog.Logger {
	return z.logger
}
