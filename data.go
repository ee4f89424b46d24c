package hookfsm

// OnData adds a data listener for state. The listener receives the raw data
// sent while state is current and may return Next(s) to request a follow-up
// transition.
func (sm *StateMachine[S]) OnData(state S, fn DataListener[S]) *Registration {
	return sm.getRepresentation(state).AddDataListener(fn)
}

// SendData dispatches data to the data listeners of the current state. If one
// of them requests a next state, the machine changes to it carrying data and
// the resulting state is returned.
func (sm *StateMachine[S]) SendData(data any) (S, error) {
	if _, err := sm.Init(); err != nil {
		return sm.current, err
	}
	return sm.dispatchData(data)
}

// SendDataTo changes to state first, without passing data into that change,
// then dispatches data like SendData.
func (sm *StateMachine[S]) SendDataTo(state S, data any) (S, error) {
	if current, err := sm.ChangeState(state, nil); err != nil {
		return current, err
	}
	return sm.dispatchData(data)
}

// SendStateData changes to state carrying data in the change event, then
// dispatches data like SendData.
func (sm *StateMachine[S]) SendStateData(state S, data any) (S, error) {
	if current, err := sm.ChangeState(state, data); err != nil {
		return current, err
	}
	return sm.dispatchData(data)
}

// ForwardData is SendDataTo without the resulting state, meant as the last
// call of a data listener handing off to another state.
func (sm *StateMachine[S]) ForwardData(state S, data any) error {
	_, err := sm.SendDataTo(state, data)
	return err
}

func (sm *StateMachine[S]) dispatchData(data any) (S, error) {
	result, err := sm.getRepresentation(sm.current).fireData(data)
	if err != nil {
		return sm.current, err
	}

	if next, ok := result.State(); ok {
		return sm.ChangeState(next, data)
	}
	return sm.current, nil
}
