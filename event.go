package hookfsm

import "fmt"

// ChangeEvent is passed to every transition listener of a single state change.
// The same value is shared by all listeners of that change, which is how a
// before listener's Cancel becomes visible to the machine.
type ChangeEvent[S comparable] struct {
	previous    S
	hasPrevious bool
	target      S

	// Data is the payload the state change was requested with.
	Data any

	cancelled   bool
	cancellable bool
}

func newChangeEvent[S comparable](previous S, hasPrevious bool, target S, data any) *ChangeEvent[S] {
	return &ChangeEvent[S]{
		previous:    previous,
		hasPrevious: hasPrevious,
		target:      target,
		Data:        data,
	}
}

// Previous returns the state being left. It is absent only for the initial
// entry into the machine's starting state.
func (e *ChangeEvent[S]) Previous() (S, bool) {
	return e.previous, e.hasPrevious
}

// Target returns the state being entered.
func (e *ChangeEvent[S]) Target() S {
	return e.target
}

// IsInitial returns true for the entry into the starting state.
func (e *ChangeEvent[S]) IsInitial() bool {
	return !e.hasPrevious
}

// Cancel aborts the state change. It only has an effect while before
// listeners are running; after listeners see a change that already happened.
func (e *ChangeEvent[S]) Cancel() {
	if e.cancellable {
		e.cancelled = true
	}
}

// Cancelled returns true if a before listener cancelled the change.
func (e *ChangeEvent[S]) Cancelled() bool {
	return e.cancelled
}

func (e *ChangeEvent[S]) String() string {
	if !e.hasPrevious {
		return fmt.Sprintf("ChangeEvent { <initial> -> %v }", e.target)
	}
	return fmt.Sprintf("ChangeEvent { %v -> %v, cancelled = %t }", e.previous, e.target, e.cancelled)
}
