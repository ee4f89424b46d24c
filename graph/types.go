// Package graph renders the table and listeners of a state machine as UML DOT
// or Mermaid state diagrams.
package graph

import (
	"github.com/atlekbai/hookfsm"
)

// State represents a state in the graph.
type State struct {
	// StateName is the name of the state.
	StateName string

	// NodeName is the name used for the node in the graph.
	NodeName string

	// EntryListeners describe the before-enter and after-enter listeners.
	EntryListeners []string

	// ExitListeners describe the before-leave and after-leave listeners.
	ExitListeners []string

	// DataListeners describe the data listeners.
	DataListeners []string

	// Leaving are the transitions leaving this state.
	Leaving []*Transition

	// Arriving are the transitions arriving at this state.
	Arriving []*Transition

	// StateInfo contains the underlying state information.
	StateInfo *hookfsm.StateInfo
}

// HasListeners returns true if any listener is attached to the state.
func (s *State) HasListeners() bool {
	return len(s.EntryListeners) > 0 || len(s.ExitListeners) > 0 || len(s.DataListeners) > 0
}

// Transition represents a declared transition in the graph.
type Transition struct {
	// Link is the named link of the transition, empty for unnamed pairs.
	Link string

	// SourceState is the source state of the transition.
	SourceState *State

	// DestinationState is the destination state of the transition.
	DestinationState *State
}

// IsStay returns true for a declared self-loop. Taking it never fires a listener.
func (t *Transition) IsStay() bool {
	return t.SourceState == t.DestinationState
}
