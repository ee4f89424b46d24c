package hookfsm

// Option configures a state machine during construction.
type Option[S comparable] func(*StateMachine[S]) error

// WithInitialState sets the state entered on first use. Without it the
// machine starts in the table's first declared state.
func WithInitialState[S comparable](state S) Option[S] {
	return func(sm *StateMachine[S]) error {
		if !sm.table.Contains(state) {
			return &ArgumentError{
				ParamName: "initial",
				Message:   "initial state '" + fmtState(state) + "' is not declared in the table",
			}
		}
		sm.initial = state
		return nil
	}
}

// WithReporter sets the diagnostics reporter. A nil reporter discards diagnostics.
func WithReporter[S comparable](reporter Reporter) Option[S] {
	return func(sm *StateMachine[S]) error {
		if reporter == nil {
			reporter = NopReporter{}
		}
		sm.reporter = reporter
		return nil
	}
}
