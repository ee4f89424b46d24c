package hookfsm

// StateConfiguration provides a fluent interface for registering the
// listeners of one state. The handles of every listener added through it are
// kept so they can be detached together.
type StateConfiguration[S comparable] struct {
	representation *StateRepresentation[S]
	registrations  []*Registration
}

// NewStateConfiguration creates a new state configuration.
func NewStateConfiguration[S comparable](representation *StateRepresentation[S]) *StateConfiguration[S] {
	return &StateConfiguration[S]{
		representation: representation,
	}
}

// State returns the state being configured.
func (sc *StateConfiguration[S]) State() S {
	return sc.representation.UnderlyingState()
}

// BeforeEnter adds a cancellable listener fired before the state is entered.
func (sc *StateConfiguration[S]) BeforeEnter(fn TransitionListener[S]) *StateConfiguration[S] {
	return sc.keep(sc.representation.AddTransitionListener(BeforeEnter, fn))
}

// AfterEnter adds a listener fired after the state is entered.
func (sc *StateConfiguration[S]) AfterEnter(fn TransitionListener[S]) *StateConfiguration[S] {
	return sc.keep(sc.representation.AddTransitionListener(AfterEnter, fn))
}

// BeforeLeave adds a cancellable listener fired before the state is left.
func (sc *StateConfiguration[S]) BeforeLeave(fn TransitionListener[S]) *StateConfiguration[S] {
	return sc.keep(sc.representation.AddTransitionListener(BeforeLeave, fn))
}

// AfterLeave adds a listener fired after the state is left.
func (sc *StateConfiguration[S]) AfterLeave(fn TransitionListener[S]) *StateConfiguration[S] {
	return sc.keep(sc.representation.AddTransitionListener(AfterLeave, fn))
}

// OnData adds a data listener for the state.
func (sc *StateConfiguration[S]) OnData(fn DataListener[S]) *StateConfiguration[S] {
	return sc.keep(sc.representation.AddDataListener(fn))
}

// Registrations returns the handles of the listeners added so far.
func (sc *StateConfiguration[S]) Registrations() []*Registration {
	result := make([]*Registration, len(sc.registrations))
	copy(result, sc.registrations)
	return result
}

// DetachAll detaches every listener added through this configuration.
func (sc *StateConfiguration[S]) DetachAll() {
	for _, r := range sc.registrations {
		r.Detach()
	}
	sc.registrations = nil
}

func (sc *StateConfiguration[S]) keep(r *Registration) *StateConfiguration[S] {
	sc.registrations = append(sc.registrations, r)
	return sc
}
