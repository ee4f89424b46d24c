package hookfsm

import (
	"errors"
	"fmt"
	"strings"
)

// ArgumentError indicates an invalid argument was passed.
type ArgumentError struct {
	ParamName string
	Message   string
}

func (e *ArgumentError) Error() string {
	if e.ParamName != "" {
		return fmt.Sprintf("%s (parameter: %s)", e.Message, e.ParamName)
	}
	return e.Message
}

// reservedError marks errors that listeners must not swallow. A registry
// propagates them instead of reporting them.
type reservedError interface {
	error
	reserved()
}

// MissingTargetError is returned when a state change is requested towards a
// value that is not one of the machine's declared states. It is returned to
// the caller of ChangeState but, unlike the reserved kinds, a listener
// returning it only gets it reported.
type MissingTargetError struct {
	Target any
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("no target state specified: '%v' is not a declared state, can not change the state", e.Target)
}

// ReentrantTransitionError is returned when a state change is requested while
// another one is still dispatching its before listeners.
type ReentrantTransitionError struct {
	InFlightFrom any
	InFlightTo   any
	From         any
	To           any
}

func (e *ReentrantTransitionError) Error() string {
	return fmt.Sprintf(
		"the state machine is already in a state change (%v -> %v); "+
			"changing the state (%v -> %v) from a before listener is not supported",
		e.InFlightFrom, e.InFlightTo, e.From, e.To)
}

func (e *ReentrantTransitionError) reserved() {}

// MultipleResultsError is returned when more than one listener of a single
// dispatch requests a next state.
type MultipleResultsError struct {
	State   any
	Phase   Phase
	Results []any
}

func (e *MultipleResultsError) Error() string {
	results := make([]string, len(e.Results))
	for i, r := range e.Results {
		results[i] = fmt.Sprintf("%v", r)
	}
	return fmt.Sprintf(
		"multiple listeners returned a result for %s on state '%v': %s",
		e.Phase, e.State, strings.Join(results, ", "))
}

func (e *MultipleResultsError) reserved() {}

// ListenerPanicError wraps a value recovered from a panicking listener.
type ListenerPanicError struct {
	Value any
}

func (e *ListenerPanicError) Error() string {
	return fmt.Sprintf("listener panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *ListenerPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsReserved reports whether err carries one of the error kinds that a
// listener registry propagates rather than isolates.
func IsReserved(err error) bool {
	var r reservedError
	return errors.As(err, &r)
}

// IsMissingTargetError reports whether err is or wraps a MissingTargetError.
func IsMissingTargetError(err error) bool {
	var e *MissingTargetError
	return errors.As(err, &e)
}

// IsReentrantTransitionError reports whether err is or wraps a ReentrantTransitionError.
func IsReentrantTransitionError(err error) bool {
	var e *ReentrantTransitionError
	return errors.As(err, &e)
}

// IsMultipleResultsError reports whether err is or wraps a MultipleResultsError.
func IsMultipleResultsError(err error) bool {
	var e *MultipleResultsError
	return errors.As(err, &e)
}
