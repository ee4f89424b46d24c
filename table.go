package hookfsm

import (
	"fmt"
	"sort"
)

// maxStates bounds the number of declared states so that a (from, to) index
// pair packs into a single uint32 key.
const maxStates = 1 << 16

// Table is the set of legal transitions between a closed set of states, plus
// the named links declared per source state. A Table is immutable once built
// and may be shared by any number of state machines.
type Table[S comparable] struct {
	states      []S
	index       map[S]int
	legal       map[uint32]struct{}
	links       map[S]map[string]S
	transitions []Transition[S]
}

func pairKey(from, to int) uint32 {
	return uint32(from)<<16 | uint32(to)
}

// States returns the declared states in declaration order.
func (t *Table[S]) States() []S {
	states := make([]S, len(t.states))
	copy(states, t.states)
	return states
}

// Contains returns true if the state was declared.
func (t *Table[S]) Contains(state S) bool {
	_, ok := t.index[state]
	return ok
}

// Index returns the declaration index of the state.
func (t *Table[S]) Index(state S) (int, bool) {
	i, ok := t.index[state]
	return i, ok
}

// IsLegal returns true if a direct transition from -> to was declared.
func (t *Table[S]) IsLegal(from, to S) bool {
	fi, ok := t.index[from]
	if !ok {
		return false
	}
	ti, ok := t.index[to]
	if !ok {
		return false
	}
	_, ok = t.legal[pairKey(fi, ti)]
	return ok
}

// LookupNamed resolves a named link starting from the given state.
func (t *Table[S]) LookupNamed(from S, name string) (S, bool) {
	to, ok := t.links[from][name]
	return to, ok
}

// Links returns the sorted link names declared from the given state.
func (t *Table[S]) Links(from S) []string {
	names := make([]string, 0, len(t.links[from]))
	for name := range t.links[from] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Targets returns the legal destinations from the given state, in the order
// their transitions were registered.
func (t *Table[S]) Targets(from S) []S {
	var targets []S
	seen := make(map[S]struct{})
	for _, tr := range t.transitions {
		if tr.Source != from {
			continue
		}
		if _, dup := seen[tr.Destination]; dup {
			continue
		}
		seen[tr.Destination] = struct{}{}
		targets = append(targets, tr.Destination)
	}
	return targets
}

// Transitions returns every registered transition in registration order.
func (t *Table[S]) Transitions() []Transition[S] {
	transitions := make([]Transition[S], len(t.transitions))
	copy(transitions, t.transitions)
	return transitions
}

// TableBuilder collects states and transitions until Build is called.
type TableBuilder[S comparable] struct {
	states      []S
	index       map[S]int
	transitions []Transition[S]
	errs        []error
}

// NewTableBuilder starts a table over the given closed set of states. The
// declaration order defines each state's index.
func NewTableBuilder[S comparable](states ...S) *TableBuilder[S] {
	b := &TableBuilder[S]{
		index: make(map[S]int, len(states)),
	}
	for _, s := range states {
		if _, dup := b.index[s]; dup {
			b.errs = append(b.errs, &ArgumentError{
				ParamName: "states",
				Message:   fmt.Sprintf("state '%v' is declared more than once", s),
			})
			continue
		}
		b.index[s] = len(b.states)
		b.states = append(b.states, s)
	}
	return b
}

// Register records from -> to as legal. A non-empty name also makes the pair
// reachable through Transition(name) while the machine is in from.
func (b *TableBuilder[S]) Register(name string, from, to S) *TableBuilder[S] {
	if _, ok := b.index[from]; !ok {
		b.errs = append(b.errs, &ArgumentError{
			ParamName: "from",
			Message:   fmt.Sprintf("transition from undeclared state '%v'", from),
		})
		return b
	}
	if _, ok := b.index[to]; !ok {
		b.errs = append(b.errs, &ArgumentError{
			ParamName: "to",
			Message:   fmt.Sprintf("transition to undeclared state '%v'", to),
		})
		return b
	}
	if name != "" {
		for _, tr := range b.transitions {
			if tr.Source == from && tr.Name == name && tr.Destination != to {
				b.errs = append(b.errs, &ArgumentError{
					ParamName: "name",
					Message: fmt.Sprintf("link '%s' from '%v' already leads to '%v', can not also lead to '%v'",
						name, from, tr.Destination, to),
				})
				return b
			}
		}
	}
	b.transitions = append(b.transitions, NewTransition(name, from, to))
	return b
}

// Permit records an unnamed legal transition.
func (b *TableBuilder[S]) Permit(from, to S) *TableBuilder[S] {
	return b.Register("", from, to)
}

// Link records a named legal transition.
func (b *TableBuilder[S]) Link(name string, from, to S) *TableBuilder[S] {
	return b.Register(name, from, to)
}

// Build validates the collected declarations and returns an immutable table.
// The builder may keep being used; tables already built are not affected.
func (b *TableBuilder[S]) Build() (*Table[S], error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if len(b.states) == 0 {
		return nil, &ArgumentError{ParamName: "states", Message: "a table needs at least one state"}
	}
	if len(b.states) > maxStates {
		return nil, &ArgumentError{
			ParamName: "states",
			Message:   fmt.Sprintf("a table supports at most %d states, got %d", maxStates, len(b.states)),
		}
	}

	t := &Table[S]{
		states:      make([]S, len(b.states)),
		index:       make(map[S]int, len(b.states)),
		legal:       make(map[uint32]struct{}, len(b.transitions)),
		links:       make(map[S]map[string]S),
		transitions: make([]Transition[S], 0, len(b.transitions)),
	}
	copy(t.states, b.states)
	for s, i := range b.index {
		t.index[s] = i
	}

	for _, tr := range b.transitions {
		key := pairKey(b.index[tr.Source], b.index[tr.Destination])
		_, seen := t.legal[key]
		t.legal[key] = struct{}{}

		if tr.Name != "" {
			fromLinks := t.links[tr.Source]
			if fromLinks == nil {
				fromLinks = make(map[string]S)
				t.links[tr.Source] = fromLinks
			}
			if _, dup := fromLinks[tr.Name]; dup && seen {
				continue
			}
			fromLinks[tr.Name] = tr.Destination
		} else if seen {
			continue
		}
		t.transitions = append(t.transitions, tr)
	}

	return t, nil
}

// MustBuild is like Build but panics if the declarations are invalid.
func (b *TableBuilder[S]) MustBuild() *Table[S] {
	t, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build transition table: %v", err))
	}
	return t
}
