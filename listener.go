package hookfsm

import (
	"fmt"

	"github.com/google/uuid"
)

// Phase is the dispatch point at which listeners of a state are invoked.
type Phase int

const (
	// BeforeEnter fires on the target state before the change; cancellable.
	BeforeEnter Phase = iota
	// AfterEnter fires on the target state after the change is committed.
	AfterEnter
	// BeforeLeave fires on the previous state before the change; cancellable.
	BeforeLeave
	// AfterLeave fires on the previous state after the change is committed.
	AfterLeave
	// Data fires on the current state when data is sent to the machine.
	Data
)

// Phases lists every phase in declaration order.
var Phases = []Phase{BeforeEnter, AfterEnter, BeforeLeave, AfterLeave, Data}

func (p Phase) String() string {
	switch p {
	case BeforeEnter:
		return "before-enter"
	case AfterEnter:
		return "after-enter"
	case BeforeLeave:
		return "before-leave"
	case AfterLeave:
		return "after-leave"
	case Data:
		return "data"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Result is what a listener hands back to the registry: either no opinion
// (the zero value) or a request to move to a next state.
type Result[S comparable] struct {
	state S
	ok    bool
}

// Next requests a follow-up transition to state.
func Next[S comparable](state S) Result[S] {
	return Result[S]{state: state, ok: true}
}

// NoResult is the "no opinion" result.
func NoResult[S comparable]() Result[S] {
	return Result[S]{}
}

// State returns the requested state, if any.
func (r Result[S]) State() (S, bool) {
	return r.state, r.ok
}

// IsEmpty returns true if no state was requested.
func (r Result[S]) IsEmpty() bool {
	return !r.ok
}

// Listener is the callback shape stored by a Registry.
type Listener[A any, S comparable] func(arg A) (Result[S], error)

// TransitionListener observes a state change. Returning an error other than
// one of the reserved kinds only gets the error reported.
type TransitionListener[S comparable] func(ev *ChangeEvent[S]) error

// DataListener receives data sent while its state is current. It may request
// a follow-up transition by returning Next(state).
type DataListener[S comparable] func(data any) (Result[S], error)

type registeredListener[A any, S comparable] struct {
	id          uuid.UUID
	fn          Listener[A, S]
	description InvocationInfo
}

// Registration identifies one added listener.
type Registration struct {
	id     uuid.UUID
	detach func(id uuid.UUID)
}

// ID returns the unique identifier of the registration.
func (r *Registration) ID() uuid.UUID {
	return r.id
}

// Detach removes the listener. Detaching more than once is a no-op.
func (r *Registration) Detach() {
	if r == nil || r.detach == nil {
		return
	}
	r.detach(r.id)
	r.detach = nil
}

// Registry holds the listeners of one (state, phase) pair.
type Registry[A any, S comparable] struct {
	state     S
	phase     Phase
	listeners []*registeredListener[A, S]
	reporter  Reporter
}

// NewRegistry creates an empty registry. Isolated listener failures are
// reported to reporter.
func NewRegistry[A any, S comparable](state S, phase Phase, reporter Reporter) *Registry[A, S] {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Registry[A, S]{
		state:    state,
		phase:    phase,
		reporter: reporter,
	}
}

// State returns the state the registry belongs to.
func (r *Registry[A, S]) State() S {
	return r.state
}

// Phase returns the phase the registry dispatches.
func (r *Registry[A, S]) Phase() Phase {
	return r.phase
}

// Len returns the number of registered listeners.
func (r *Registry[A, S]) Len() int {
	return len(r.listeners)
}

// Add appends a listener and returns its registration handle.
func (r *Registry[A, S]) Add(fn Listener[A, S]) *Registration {
	return r.add(fn, CreateInvocationInfo(fn, ""))
}

func (r *Registry[A, S]) add(fn Listener[A, S], description InvocationInfo) *Registration {
	l := &registeredListener[A, S]{
		id:          uuid.New(),
		fn:          fn,
		description: description,
	}
	r.listeners = append(r.listeners, l)
	return &Registration{id: l.id, detach: r.remove}
}

func (r *Registry[A, S]) remove(id uuid.UUID) {
	for i, l := range r.listeners {
		if l.id == id {
			r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Descriptions returns the descriptions of the registered listeners in order.
func (r *Registry[A, S]) Descriptions() []InvocationInfo {
	result := make([]InvocationInfo, len(r.listeners))
	for i, l := range r.listeners {
		result[i] = l.description
	}
	return result
}

// Fire invokes the listeners registered at call time, in registration order,
// each with the same arg. At most one listener may return a non-empty result;
// a second one stops dispatch with a MultipleResultsError. Reserved errors
// stop dispatch and are returned. Any other error or panic is reported and
// the listener is treated as having returned nothing.
func (r *Registry[A, S]) Fire(arg A) (Result[S], error) {
	var result Result[S]
	if len(r.listeners) == 0 {
		return result, nil
	}

	snapshot := make([]*registeredListener[A, S], len(r.listeners))
	copy(snapshot, r.listeners)

	for _, l := range snapshot {
		res, err := r.invoke(l, arg)
		if err != nil {
			if IsReserved(err) {
				return result, err
			}
			r.reporter.Report(Diagnostic{
				Kind:  ListenerFailed,
				State: r.state,
				Phase: r.phase,
				Err:   err,
			})
			continue
		}
		if res.IsEmpty() {
			continue
		}
		if !result.IsEmpty() {
			return result, &MultipleResultsError{
				State:   r.state,
				Phase:   r.phase,
				Results: []any{result.state, res.state},
			}
		}
		result = res
	}

	return result, nil
}

func (r *Registry[A, S]) invoke(l *registeredListener[A, S], arg A) (res Result[S], err error) {
	defer func() {
		if v := recover(); v != nil {
			res = Result[S]{}
			err = &ListenerPanicError{Value: v}
		}
	}()
	return l.fn(arg)
}
