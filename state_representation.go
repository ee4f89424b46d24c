package hookfsm

// StateRepresentation holds the listener registries of a single state: one
// per transition phase and one for data.
type StateRepresentation[S comparable] struct {
	state S

	beforeEnter *Registry[*ChangeEvent[S], S]
	afterEnter  *Registry[*ChangeEvent[S], S]
	beforeLeave *Registry[*ChangeEvent[S], S]
	afterLeave  *Registry[*ChangeEvent[S], S]
	data        *Registry[any, S]
}

// NewStateRepresentation creates the registries for a state.
func NewStateRepresentation[S comparable](state S, reporter Reporter) *StateRepresentation[S] {
	return &StateRepresentation[S]{
		state:       state,
		beforeEnter: NewRegistry[*ChangeEvent[S], S](state, BeforeEnter, reporter),
		afterEnter:  NewRegistry[*ChangeEvent[S], S](state, AfterEnter, reporter),
		beforeLeave: NewRegistry[*ChangeEvent[S], S](state, BeforeLeave, reporter),
		afterLeave:  NewRegistry[*ChangeEvent[S], S](state, AfterLeave, reporter),
		data:        NewRegistry[any, S](state, Data, reporter),
	}
}

// UnderlyingState returns the state this representation models.
func (sr *StateRepresentation[S]) UnderlyingState() S {
	return sr.state
}

// transitionRegistry returns the registry of a transition phase, nil for Data.
func (sr *StateRepresentation[S]) transitionRegistry(phase Phase) *Registry[*ChangeEvent[S], S] {
	switch phase {
	case BeforeEnter:
		return sr.beforeEnter
	case AfterEnter:
		return sr.afterEnter
	case BeforeLeave:
		return sr.beforeLeave
	case AfterLeave:
		return sr.afterLeave
	default:
		return nil
	}
}

// AddTransitionListener registers fn for one of the four transition phases.
func (sr *StateRepresentation[S]) AddTransitionListener(phase Phase, fn TransitionListener[S]) *Registration {
	registry := sr.transitionRegistry(phase)
	if registry == nil {
		panic("hookfsm: " + phase.String() + " is not a transition phase")
	}
	return registry.add(func(ev *ChangeEvent[S]) (Result[S], error) {
		return Result[S]{}, fn(ev)
	}, CreateInvocationInfo(fn, ""))
}

// AddDataListener registers fn for the data phase.
func (sr *StateRepresentation[S]) AddDataListener(fn DataListener[S]) *Registration {
	return sr.data.add(Listener[any, S](fn), CreateInvocationInfo(fn, ""))
}

// fireTransition dispatches a change event to one transition phase. Results
// are ignored; only reserved errors come back.
func (sr *StateRepresentation[S]) fireTransition(phase Phase, ev *ChangeEvent[S]) error {
	_, err := sr.transitionRegistry(phase).Fire(ev)
	return err
}

// fireData dispatches data and returns the single requested next state, if any.
func (sr *StateRepresentation[S]) fireData(data any) (Result[S], error) {
	return sr.data.Fire(data)
}

func (sr *StateRepresentation[S]) descriptions(phase Phase) []InvocationInfo {
	if phase == Data {
		return sr.data.Descriptions()
	}
	return sr.transitionRegistry(phase).Descriptions()
}

// ListenerCount returns the number of listeners registered for a phase.
func (sr *StateRepresentation[S]) ListenerCount(phase Phase) int {
	if phase == Data {
		return sr.data.Len()
	}
	if r := sr.transitionRegistry(phase); r != nil {
		return r.Len()
	}
	return 0
}
