package graph

import (
	"fmt"
	"strings"

	"github.com/atlekbai/hookfsm"
)

// UmlDotGraphStyle generates DOT graphs in basic UML style.
type UmlDotGraphStyle struct {
	// Direction is emitted as the graph rankdir.
	Direction Direction
}

// NewUmlDotGraphStyle creates a new UML DOT graph style laid out left to right.
func NewUmlDotGraphStyle() *UmlDotGraphStyle {
	return &UmlDotGraphStyle{Direction: LeftToRight}
}

// GetPrefix returns the text that starts a new DOT graph.
func (s *UmlDotGraphStyle) GetPrefix() string {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("compound=true;\n")
	sb.WriteString("node [shape=Mrecord]\n")
	sb.WriteString(fmt.Sprintf("rankdir=\"%s\"\n", s.Direction))
	return sb.String()
}

// FormatOneState formats a single state. Listeners are listed in a second
// record field.
func (s *UmlDotGraphStyle) FormatOneState(state *State) string {
	escapedName := EscapeLabel(state.StateName)

	if !state.HasListeners() {
		return fmt.Sprintf("\"%s\" [label=\"%s\"];\n", escapedName, escapedName)
	}

	lines := listenerLines(state)
	for i, line := range lines {
		lines[i] = EscapeLabel(line)
	}

	return fmt.Sprintf("\"%s\" [label=\"%s|%s\"];\n", escapedName, escapedName, strings.Join(lines, "\\n"))
}

// FormatAllTransitions formats all transitions.
func (s *UmlDotGraphStyle) FormatAllTransitions(transitions []*Transition) []string {
	return FormatTransitions(s, transitions)
}

// FormatOneTransition formats a single transition. Self-loops are dashed.
func (s *UmlDotGraphStyle) FormatOneTransition(sourceNodeName, link, destinationNodeName string) string {
	style := "solid"
	if sourceNodeName == destinationNodeName {
		style = "dashed"
	}
	return fmt.Sprintf("\"%s\" -> \"%s\" [style=\"%s\", label=\"%s\"];",
		EscapeLabel(sourceNodeName), EscapeLabel(destinationNodeName), style, EscapeLabel(link))
}

// GetInitialTransition returns the text for the initial state transition.
func (s *UmlDotGraphStyle) GetInitialTransition(initialState *hookfsm.StateInfo) string {
	if initialState == nil {
		return "\n}"
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(" init [label=\"\", shape=point];")
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(" init -> \"%s\"[style = \"solid\"]", EscapeLabel(initialState.String())))
	sb.WriteString("\n")
	sb.WriteString("}")

	return sb.String()
}

// EscapeLabel escapes special characters in a label.
func EscapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\\", "\\\\")
	label = strings.ReplaceAll(label, "\"", "\\\"")
	return label
}

// UmlDotGraph generates a UML DOT graph from machine info.
func UmlDotGraph(machineInfo *hookfsm.MachineInfo) string {
	graph := NewStateGraph(machineInfo)
	return graph.ToGraph(NewUmlDotGraphStyle())
}
