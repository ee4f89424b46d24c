package hookfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/hookfsm"
)

func TestTableQueries(t *testing.T) {
	table := hookfsm.NewTestTable()

	assert.Equal(t, []hookfsm.State{hookfsm.Default, hookfsm.Running, hookfsm.Stopped}, table.States())
	assert.True(t, table.Contains(hookfsm.Stopped))
	assert.False(t, table.Contains(hookfsm.Paused))

	idx, ok := table.Index(hookfsm.Stopped)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	_, ok = table.Index(hookfsm.Paused)
	assert.False(t, ok)

	assert.True(t, table.IsLegal(hookfsm.Default, hookfsm.Running))
	assert.True(t, table.IsLegal(hookfsm.Running, hookfsm.Running))
	assert.False(t, table.IsLegal(hookfsm.Stopped, hookfsm.Running))
	assert.False(t, table.IsLegal(hookfsm.Running, hookfsm.Paused))
	assert.False(t, table.IsLegal(hookfsm.Paused, hookfsm.Running))
}

func TestTableLinks(t *testing.T) {
	table := hookfsm.NewTableBuilder(hookfsm.Default, hookfsm.Running, hookfsm.Stopped).
		Link("run", hookfsm.Default, hookfsm.Running).
		Link("halt", hookfsm.Default, hookfsm.Stopped).
		Link("halt", hookfsm.Running, hookfsm.Stopped).
		MustBuild()

	to, ok := table.LookupNamed(hookfsm.Default, "run")
	assert.True(t, ok)
	assert.Equal(t, hookfsm.Running, to)

	to, ok = table.LookupNamed(hookfsm.Running, "halt")
	assert.True(t, ok)
	assert.Equal(t, hookfsm.Stopped, to)

	_, ok = table.LookupNamed(hookfsm.Running, "run")
	assert.False(t, ok)
	_, ok = table.LookupNamed(hookfsm.Stopped, "halt")
	assert.False(t, ok)

	assert.Equal(t, []string{"halt", "run"}, table.Links(hookfsm.Default))
	assert.Empty(t, table.Links(hookfsm.Stopped))
}

func TestTableIsImmutable(t *testing.T) {
	builder := hookfsm.NewTableBuilder(hookfsm.Default, hookfsm.Running).
		Permit(hookfsm.Default, hookfsm.Running)
	table := builder.MustBuild()

	builder.Permit(hookfsm.Running, hookfsm.Default)
	assert.False(t, table.IsLegal(hookfsm.Running, hookfsm.Default))

	states := table.States()
	states[0] = hookfsm.Stopped
	assert.Equal(t, hookfsm.Default, table.States()[0])

	transitions := table.Transitions()
	transitions[0].Name = "changed"
	assert.Empty(t, table.Transitions()[0].Name)
}

func TestTableDeduplicatesPairs(t *testing.T) {
	table := hookfsm.NewTableBuilder(hookfsm.Default, hookfsm.Running).
		Permit(hookfsm.Default, hookfsm.Running).
		Permit(hookfsm.Default, hookfsm.Running).
		Link("run", hookfsm.Default, hookfsm.Running).
		Link("run", hookfsm.Default, hookfsm.Running).
		MustBuild()

	assert.Len(t, table.Transitions(), 2)
	assert.Equal(t, []hookfsm.State{hookfsm.Running}, table.Targets(hookfsm.Default))
}

func TestTableBuilderErrors(t *testing.T) {
	tests := []struct {
		name      string
		builder   *hookfsm.TableBuilder[hookfsm.State]
		paramName string
	}{
		{
			name:      "no states",
			builder:   hookfsm.NewTableBuilder[hookfsm.State](),
			paramName: "states",
		},
		{
			name:      "duplicate state",
			builder:   hookfsm.NewTableBuilder(hookfsm.Default, hookfsm.Default),
			paramName: "states",
		},
		{
			name: "undeclared source",
			builder: hookfsm.NewTableBuilder(hookfsm.Default).
				Permit(hookfsm.Paused, hookfsm.Default),
			paramName: "from",
		},
		{
			name: "undeclared destination",
			builder: hookfsm.NewTableBuilder(hookfsm.Default).
				Permit(hookfsm.Default, hookfsm.Paused),
			paramName: "to",
		},
		{
			name: "ambiguous link",
			builder: hookfsm.NewTableBuilder(hookfsm.Default, hookfsm.Running, hookfsm.Stopped).
				Link("go", hookfsm.Default, hookfsm.Running).
				Link("go", hookfsm.Default, hookfsm.Stopped),
			paramName: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := tt.builder.Build()
			assert.Nil(t, table)

			var argErr *hookfsm.ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.paramName, argErr.ParamName)

			assert.Panics(t, func() { tt.builder.MustBuild() })
		})
	}
}

func TestTransitionString(t *testing.T) {
	assert.Equal(t, "DEFAULT -> STOPPED", hookfsm.NewTransition("", hookfsm.Default, hookfsm.Stopped).String())

	named := hookfsm.NewTransition("run", hookfsm.Default, hookfsm.Running)
	assert.Equal(t, "DEFAULT -(run)-> RUNNING", named.String())
	assert.True(t, named.IsNamed())
	assert.False(t, named.IsReentry())
	assert.True(t, hookfsm.NewTransition("", hookfsm.Running, hookfsm.Running).IsReentry())
}
