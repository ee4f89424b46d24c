package hookfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/hookfsm"
)

func TestTransitionFollowsNamedLink(t *testing.T) {
	sm, reporter := hookfsm.NewTestMachine(t)

	state, err := sm.Transition("run", nil)

	require.NoError(t, err)
	assert.Equal(t, hookfsm.Running, state)
	assert.Equal(t, hookfsm.Running, sm.State())
	assert.Empty(t, reporter.Diagnostics)
}

func TestTransitionCarriesData(t *testing.T) {
	sm, _ := hookfsm.NewTestMachine(t)
	var data any
	sm.BeforeEnter(hookfsm.Running, func(ev *event) error {
		data = ev.Data
		return nil
	})

	_, err := sm.Transition("run", "fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", data)
}

func TestTransitionUnknownLinkIsReported(t *testing.T) {
	sm, reporter := hookfsm.NewTestMachine(t, hookfsm.WithInitialState(hookfsm.Stopped))

	state, err := sm.Transition("run", nil)

	require.NoError(t, err)
	assert.Equal(t, hookfsm.Stopped, state)
	require.Len(t, reporter.Diagnostics, 1)
	d := reporter.Diagnostics[0]
	assert.Equal(t, hookfsm.UnknownLink, d.Kind)
	assert.Equal(t, "run", d.Link)
	assert.Equal(t, "there is no transition named 'run' starting from 'STOPPED'", d.String())
}

func TestTransitionCanBeCancelled(t *testing.T) {
	sm, _ := hookfsm.NewTestMachine(t)
	sm.BeforeLeave(hookfsm.Default, func(ev *event) error {
		ev.Cancel()
		return nil
	})

	state, err := sm.Transition("run", nil)
	require.NoError(t, err)
	assert.Equal(t, hookfsm.Default, state)
}

func TestPermittedLinks(t *testing.T) {
	sm, _ := hookfsm.NewTestMachine(t)
	assert.Equal(t, []string{"run"}, sm.PermittedLinks())

	_, err := sm.Transition("run", nil)
	require.NoError(t, err)
	assert.Empty(t, sm.PermittedLinks())
}

func TestPermittedTargets(t *testing.T) {
	sm, _ := hookfsm.NewTestMachine(t)
	assert.Equal(t, []hookfsm.State{hookfsm.Running, hookfsm.Stopped}, sm.PermittedTargets())

	_, err := sm.ChangeState(hookfsm.Running, nil)
	require.NoError(t, err)
	// RUNNING -> RUNNING is declared but is not a way out of RUNNING.
	assert.Equal(t, []hookfsm.State{hookfsm.Default, hookfsm.Stopped}, sm.PermittedTargets())

	_, err = sm.ChangeState(hookfsm.Stopped, nil)
	require.NoError(t, err)
	assert.Empty(t, sm.PermittedTargets())
}

func TestCanChangeState(t *testing.T) {
	sm, _ := hookfsm.NewTestMachine(t)

	assert.True(t, sm.CanChangeState(hookfsm.Running))
	assert.True(t, sm.CanChangeState(hookfsm.Stopped))
	assert.False(t, sm.CanChangeState(hookfsm.Default))
	assert.False(t, sm.CanChangeState(hookfsm.Paused))

	_, err := sm.ChangeState(hookfsm.Stopped, nil)
	require.NoError(t, err)
	assert.False(t, sm.CanChangeState(hookfsm.Running))
}

func TestCustomStateType(t *testing.T) {
	table := hookfsm.NewTableBuilder("idle", "busy").
		Link("start", "idle", "busy").
		Link("finish", "busy", "idle").
		MustBuild()
	sm := hookfsm.MustNewStateMachine(table, hookfsm.WithReporter[string](hookfsm.NopReporter{}))

	var trail []string
	sm.AfterEnter("busy", func(ev *hookfsm.ChangeEvent[string]) error {
		trail = append(trail, ev.String())
		return nil
	})

	state, err := sm.Transition("start", nil)
	require.NoError(t, err)
	assert.Equal(t, "busy", state)

	state, err = sm.Transition("finish", nil)
	require.NoError(t, err)
	assert.Equal(t, "idle", state)

	assert.Equal(t, []string{"ChangeEvent { idle -> busy, cancelled = false }"}, trail)
}

func TestMissingTargetBeforeFirstUseReturnsInitialState(t *testing.T) {
	table := hookfsm.NewTableBuilder("idle", "busy").
		Permit("idle", "busy").
		MustBuild()
	sm := hookfsm.MustNewStateMachine(table,
		hookfsm.WithInitialState("busy"),
		hookfsm.WithReporter[string](hookfsm.NopReporter{}))

	state, err := sm.ChangeState("gone", nil)
	assert.True(t, hookfsm.IsMissingTargetError(err))
	assert.Equal(t, "busy", state)

	state, err = sm.SendDataTo("gone", "x")
	assert.True(t, hookfsm.IsMissingTargetError(err))
	assert.Equal(t, "busy", state)

	state, err = sm.SendStateData("gone", "x")
	assert.True(t, hookfsm.IsMissingTargetError(err))
	assert.Equal(t, "busy", state)
}
