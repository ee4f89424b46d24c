package hookfsm

import (
	"fmt"
)

// StateMachine drives a single current state through the transitions of a
// Table, dispatching lifecycle listeners on the way.
//
// A StateMachine is not safe for concurrent use. Listeners run synchronously
// on the caller's goroutine and may call back into the machine from after and
// data listeners; calls from before listeners fail with a
// ReentrantTransitionError.
type StateMachine[S comparable] struct {
	table   *Table[S]
	initial S

	// current is only meaningful once initialized is set.
	current     S
	initialized bool

	// inFlight is the change whose before listeners are running, if any.
	inFlight *ChangeEvent[S]

	// representations hold the listener registries, created on demand.
	representations map[S]*StateRepresentation[S]

	reporter Reporter
}

// NewStateMachine creates a state machine over table. The machine does not
// enter its initial state until the first operation that needs one.
func NewStateMachine[S comparable](table *Table[S], opts ...Option[S]) (*StateMachine[S], error) {
	if table == nil || len(table.states) == 0 {
		return nil, &ArgumentError{ParamName: "table", Message: "a state machine needs a table with at least one state"}
	}

	sm := &StateMachine[S]{
		table:           table,
		initial:         table.states[0],
		representations: make(map[S]*StateRepresentation[S]),
		reporter:        NewConsoleReporter(),
	}

	for _, opt := range opts {
		if err := opt(sm); err != nil {
			return nil, err
		}
	}

	return sm, nil
}

// MustNewStateMachine is like NewStateMachine but panics if an option fails.
func MustNewStateMachine[S comparable](table *Table[S], opts ...Option[S]) *StateMachine[S] {
	sm, err := NewStateMachine(table, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return sm
}

// Table returns the transition table the machine validates against.
func (sm *StateMachine[S]) Table() *Table[S] {
	return sm.table
}

// InitialState returns the state the machine starts in.
func (sm *StateMachine[S]) InitialState() S {
	return sm.initial
}

// State returns the current state, entering the initial state first if the
// machine was not used yet. An error raised while entering the initial state
// is reported; use Init to receive it instead.
func (sm *StateMachine[S]) State() S {
	if _, err := sm.Init(); err != nil {
		sm.reporter.Report(Diagnostic{
			Kind:  ListenerFailed,
			State: sm.current,
			Phase: AfterEnter,
			Err:   err,
		})
	}
	return sm.current
}

// Init enters the initial state if the machine was not used yet. Only the
// after-enter listeners of the initial state run, and the entry can not be
// cancelled. Calling Init again is a no-op returning the current state.
func (sm *StateMachine[S]) Init() (S, error) {
	if sm.initialized {
		return sm.current, nil
	}

	ev := newChangeEvent(*new(S), false, sm.initial, nil)
	sm.current = sm.initial
	sm.initialized = true

	if err := sm.getRepresentation(sm.initial).fireTransition(AfterEnter, ev); err != nil {
		return sm.current, err
	}
	return sm.current, nil
}

// IsInTransition returns true while before listeners of a change are running.
func (sm *StateMachine[S]) IsInTransition() bool {
	return sm.inFlight != nil
}

// ChangeState moves the machine to target, carrying data in the change event.
//
// Changing to the current state is a no-op that fires nothing. A target that
// has no declared transition from the current state is reported and the
// current state is returned unchanged with a nil error. Errors are reserved
// for misuse: an undeclared target, a change requested from a before
// listener, or multiple listener results.
func (sm *StateMachine[S]) ChangeState(target S, data any) (S, error) {
	if !sm.table.Contains(target) {
		if !sm.initialized {
			return sm.initial, &MissingTargetError{Target: target}
		}
		return sm.current, &MissingTargetError{Target: target}
	}

	if _, err := sm.Init(); err != nil {
		return sm.current, err
	}

	return sm.changeState(target, data)
}

func (sm *StateMachine[S]) changeState(target S, data any) (S, error) {
	// Self transitions never fire listeners, even when declared in the table.
	if target == sm.current {
		return sm.current, nil
	}

	if sm.inFlight != nil {
		return sm.current, &ReentrantTransitionError{
			InFlightFrom: sm.inFlight.previous,
			InFlightTo:   sm.inFlight.target,
			From:         sm.current,
			To:           target,
		}
	}

	if !sm.table.IsLegal(sm.current, target) {
		sm.reporter.Report(Diagnostic{
			Kind:   IllegalTransition,
			State:  sm.current,
			Target: target,
		})
		return sm.current, nil
	}

	previous := sm.current
	ev := newChangeEvent(previous, true, target, data)
	ev.cancellable = true
	sm.inFlight = ev

	from := sm.getRepresentation(previous)
	to := sm.getRepresentation(target)

	if err := from.fireTransition(BeforeLeave, ev); err != nil {
		sm.inFlight = nil
		return sm.current, err
	}
	if err := to.fireTransition(BeforeEnter, ev); err != nil {
		sm.inFlight = nil
		return sm.current, err
	}

	ev.cancellable = false
	if ev.cancelled {
		sm.inFlight = nil
		return sm.current, nil
	}

	sm.current = target
	sm.inFlight = nil

	if err := from.fireTransition(AfterLeave, ev); err != nil {
		return sm.current, err
	}
	if err := to.fireTransition(AfterEnter, ev); err != nil {
		return sm.current, err
	}

	return sm.current, nil
}

// Transition follows the named link declared from the current state. An
// unknown link is reported and the current state is returned unchanged.
func (sm *StateMachine[S]) Transition(link string, data any) (S, error) {
	if _, err := sm.Init(); err != nil {
		return sm.current, err
	}

	target, ok := sm.table.LookupNamed(sm.current, link)
	if !ok {
		sm.reporter.Report(Diagnostic{
			Kind:  UnknownLink,
			State: sm.current,
			Link:  link,
		})
		return sm.current, nil
	}

	return sm.ChangeState(target, data)
}

// BeforeEnter adds a listener that fires before entering state. The change
// can still be cancelled at this stage via ev.Cancel().
func (sm *StateMachine[S]) BeforeEnter(state S, fn TransitionListener[S]) *Registration {
	return sm.getRepresentation(state).AddTransitionListener(BeforeEnter, fn)
}

// AfterEnter adds a listener that fires after state is entered. It also fires
// for the initial state when the machine is first used.
func (sm *StateMachine[S]) AfterEnter(state S, fn TransitionListener[S]) *Registration {
	return sm.getRepresentation(state).AddTransitionListener(AfterEnter, fn)
}

// BeforeLeave adds a listener that fires before leaving state. The change can
// still be cancelled at this stage via ev.Cancel().
func (sm *StateMachine[S]) BeforeLeave(state S, fn TransitionListener[S]) *Registration {
	return sm.getRepresentation(state).AddTransitionListener(BeforeLeave, fn)
}

// AfterLeave adds a listener that fires after state was left.
func (sm *StateMachine[S]) AfterLeave(state S, fn TransitionListener[S]) *Registration {
	return sm.getRepresentation(state).AddTransitionListener(AfterLeave, fn)
}

// Configure begins fluent configuration of the listeners of a state.
func (sm *StateMachine[S]) Configure(state S) *StateConfiguration[S] {
	return NewStateConfiguration(sm.getRepresentation(state))
}

// CanChangeState returns true if ChangeState(target) would leave the current
// state, ignoring cancellation by listeners.
func (sm *StateMachine[S]) CanChangeState(target S) bool {
	current := sm.State()
	return target != current && sm.table.IsLegal(current, target)
}

// PermittedTargets returns the states reachable from the current state.
func (sm *StateMachine[S]) PermittedTargets() []S {
	current := sm.State()
	var targets []S
	for _, t := range sm.table.Targets(current) {
		if t != current {
			targets = append(targets, t)
		}
	}
	return targets
}

// PermittedLinks returns the link names usable from the current state.
func (sm *StateMachine[S]) PermittedLinks() []string {
	return sm.table.Links(sm.State())
}

// getRepresentation gets or creates the representation for a state.
func (sm *StateMachine[S]) getRepresentation(state S) *StateRepresentation[S] {
	representation, exists := sm.representations[state]
	if !exists {
		representation = NewStateRepresentation(state, sm.reporter)
		sm.representations[state] = representation
	}
	return representation
}

// String returns a string representation of the current state.
func (sm *StateMachine[S]) String() string {
	if !sm.initialized {
		return fmt.Sprintf("StateMachine { State = <uninitialized>, Initial = %v }", sm.initial)
	}
	return fmt.Sprintf("StateMachine { State = %v }", sm.current)
}

func fmtState(state any) string {
	return fmt.Sprintf("%v", state)
}
