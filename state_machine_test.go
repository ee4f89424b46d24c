package hookfsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test state type
type State int

const (
	Default State = iota
	Running
	Stopped
	// Paused is never declared in the test table.
	Paused
)

func (s State) String() string {
	switch s {
	case Default:
		return "DEFAULT"
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	case Paused:
		return "PAUSED"
	default:
		return "Unknown"
	}
}

// NewTestTable returns the table used across the tests:
//
//	DEFAULT -(run)-> RUNNING, DEFAULT -> STOPPED,
//	RUNNING -> DEFAULT, RUNNING -> STOPPED, RUNNING -> RUNNING
func NewTestTable() *Table[State] {
	return NewTableBuilder(Default, Running, Stopped).
		Link("run", Default, Running).
		Permit(Default, Stopped).
		Permit(Running, Default).
		Permit(Running, Stopped).
		Permit(Running, Running).
		MustBuild()
}

// RecordingReporter keeps every diagnostic it receives.
type RecordingReporter struct {
	Diagnostics []Diagnostic
}

func (r *RecordingReporter) Report(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Kinds returns the kinds of the recorded diagnostics in order.
func (r *RecordingReporter) Kinds() []DiagnosticKind {
	kinds := make([]DiagnosticKind, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		kinds[i] = d.Kind
	}
	return kinds
}

// NewTestMachine builds a machine over the test table with a recording reporter.
func NewTestMachine(t *testing.T, opts ...Option[State]) (*StateMachine[State], *RecordingReporter) {
	t.Helper()
	reporter := &RecordingReporter{}
	opts = append([]Option[State]{WithReporter[State](reporter)}, opts...)
	sm, err := NewStateMachine(NewTestTable(), opts...)
	require.NoError(t, err)
	return sm, reporter
}

func TestNewStateMachine(t *testing.T) {
	sm, _ := NewTestMachine(t)

	assert.Equal(t, Default, sm.InitialState())
	assert.False(t, sm.initialized, "machine should not enter its initial state before first use")
	assert.Equal(t, Default, sm.State())
	assert.True(t, sm.initialized)
}

func TestNewStateMachine_WithInitialState(t *testing.T) {
	sm, _ := NewTestMachine(t, WithInitialState(Stopped))

	assert.Equal(t, Stopped, sm.State())
}

func TestNewStateMachine_UndeclaredInitialState(t *testing.T) {
	_, err := NewStateMachine(NewTestTable(), WithInitialState(Paused))

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "initial", argErr.ParamName)
}

func TestNewStateMachine_NilTable(t *testing.T) {
	_, err := NewStateMachine[State](nil)
	require.Error(t, err)
}

func TestMustNewStateMachine_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewStateMachine(NewTestTable(), WithInitialState(Paused))
	})
}

func TestChangeState(t *testing.T) {
	sm, reporter := NewTestMachine(t)

	state, err := sm.ChangeState(Running, nil)
	require.NoError(t, err)
	assert.Equal(t, Running, state)
	assert.Equal(t, Running, sm.State())

	state, err = sm.ChangeState(Stopped, nil)
	require.NoError(t, err)
	assert.Equal(t, Stopped, state)
	assert.Empty(t, reporter.Diagnostics)
}

func TestChangeState_SameStateIsNoop(t *testing.T) {
	sm, _ := NewTestMachine(t, WithInitialState(Running))
	fired := 0
	count := func(ev *ChangeEvent[State]) error {
		fired++
		return nil
	}

	sm.Init()
	sm.BeforeEnter(Running, count)
	sm.AfterEnter(Running, count)
	sm.BeforeLeave(Running, count)
	sm.AfterLeave(Running, count)

	// RUNNING -> RUNNING is declared, and still fires nothing.
	state, err := sm.ChangeState(Running, "ignored")
	require.NoError(t, err)
	assert.Equal(t, Running, state)
	assert.Equal(t, 0, fired)
}

func TestChangeState_IllegalTransitionIsReported(t *testing.T) {
	sm, reporter := NewTestMachine(t, WithInitialState(Stopped))
	fired := 0
	sm.BeforeLeave(Stopped, func(ev *ChangeEvent[State]) error {
		fired++
		return nil
	})
	sm.BeforeEnter(Running, func(ev *ChangeEvent[State]) error {
		fired++
		return nil
	})

	state, err := sm.ChangeState(Running, nil)

	require.NoError(t, err)
	assert.Equal(t, Stopped, state)
	assert.Equal(t, 0, fired)
	require.Len(t, reporter.Diagnostics, 1)
	d := reporter.Diagnostics[0]
	assert.Equal(t, IllegalTransition, d.Kind)
	assert.Equal(t, Stopped, d.State)
	assert.Equal(t, Running, d.Target)
	assert.Equal(t, "no transition exists between STOPPED -> RUNNING", d.String())
}

func TestChangeState_MissingTarget(t *testing.T) {
	sm, _ := NewTestMachine(t)

	state, err := sm.ChangeState(Paused, nil)

	require.Error(t, err)
	assert.True(t, IsMissingTargetError(err))
	assert.Equal(t, Default, state)
}

func TestChangeState_CancellationClearsInFlightMarker(t *testing.T) {
	sm, _ := NewTestMachine(t)
	cancel := true
	sm.BeforeEnter(Running, func(ev *ChangeEvent[State]) error {
		if cancel {
			ev.Cancel()
		}
		return nil
	})

	state, err := sm.ChangeState(Running, nil)
	require.NoError(t, err)
	assert.Equal(t, Default, state)
	assert.Nil(t, sm.inFlight)
	assert.False(t, sm.IsInTransition())

	// The machine is not wedged by the cancelled change.
	cancel = false
	state, err = sm.ChangeState(Running, nil)
	require.NoError(t, err)
	assert.Equal(t, Running, state)
}

func TestChangeState_ReservedErrorClearsInFlightMarker(t *testing.T) {
	sm, _ := NewTestMachine(t)
	sm.BeforeEnter(Running, func(ev *ChangeEvent[State]) error {
		_, err := sm.ChangeState(Stopped, nil)
		return err
	})

	_, err := sm.ChangeState(Running, nil)
	require.Error(t, err)
	assert.Nil(t, sm.inFlight)
	assert.Equal(t, Default, sm.State())
}

func TestIsInTransition(t *testing.T) {
	sm, _ := NewTestMachine(t)
	var during, after bool
	sm.BeforeEnter(Running, func(ev *ChangeEvent[State]) error {
		during = sm.IsInTransition()
		return nil
	})
	sm.AfterEnter(Running, func(ev *ChangeEvent[State]) error {
		after = sm.IsInTransition()
		return nil
	})

	_, err := sm.ChangeState(Running, nil)
	require.NoError(t, err)
	assert.True(t, during)
	assert.False(t, after)
}

func TestMachinesShareTable(t *testing.T) {
	table := NewTestTable()
	a := MustNewStateMachine(table, WithReporter[State](NopReporter{}))
	b := MustNewStateMachine(table, WithReporter[State](NopReporter{}), WithInitialState(Running))

	_, err := a.ChangeState(Stopped, nil)
	require.NoError(t, err)

	assert.Equal(t, Stopped, a.State())
	assert.Equal(t, Running, b.State())
	assert.Same(t, a.Table(), b.Table())
}

func TestStateMachine_String(t *testing.T) {
	sm, _ := NewTestMachine(t)
	assert.Equal(t, "StateMachine { State = <uninitialized>, Initial = DEFAULT }", sm.String())

	sm.Init()
	assert.Equal(t, "StateMachine { State = DEFAULT }", sm.String())
}

func TestGetRepresentation_CreatesOnDemand(t *testing.T) {
	sm, _ := NewTestMachine(t)
	assert.Empty(t, sm.representations)

	rep := sm.getRepresentation(Running)
	assert.Same(t, rep, sm.getRepresentation(Running))
	assert.Equal(t, Running, rep.UnderlyingState())
}
