package hookfsm

import "fmt"

// Transition describes a declared (source, destination) pair of a table.
type Transition[S comparable] struct {
	// Source is the state transitioned from.
	Source S

	// Destination is the state transitioned to.
	Destination S

	// Name is the named link for this pair, empty when the pair is unnamed.
	Name string
}

// NewTransition creates a new transition.
func NewTransition[S comparable](name string, source, destination S) Transition[S] {
	return Transition[S]{
		Source:      source,
		Destination: destination,
		Name:        name,
	}
}

// IsReentry returns true if the transition is a re-entry, i.e., the identity transition.
// Re-entries are legal to declare but never fire any listener.
func (t Transition[S]) IsReentry() bool {
	return t.Source == t.Destination
}

// IsNamed returns true if the transition can be taken through a named link.
func (t Transition[S]) IsNamed() bool {
	return t.Name != ""
}

func (t Transition[S]) String() string {
	if t.Name == "" {
		return fmt.Sprintf("%v -> %v", t.Source, t.Destination)
	}
	return fmt.Sprintf("%v -(%s)-> %v", t.Source, t.Name, t.Destination)
}
