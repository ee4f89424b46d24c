package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/atlekbai/hookfsm"
)

// MermaidGraphStyle generates Mermaid graphs.
type MermaidGraphStyle struct {
	graph     *StateGraph
	direction *Direction

	// aliases maps state names to sanitized node names.
	aliases map[string]string
}

// NewMermaidGraphStyle creates a new Mermaid graph style. A nil direction
// leaves the layout to Mermaid.
func NewMermaidGraphStyle(graph *StateGraph, direction *Direction) *MermaidGraphStyle {
	s := &MermaidGraphStyle{
		graph:     graph,
		direction: direction,
		aliases:   make(map[string]string),
	}
	s.buildAliases()
	return s
}

// GetPrefix returns the text that starts a new Mermaid graph.
func (s *MermaidGraphStyle) GetPrefix() string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2")

	if s.direction != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("\tdirection %s", *s.direction))
	}

	for _, stateName := range s.graph.getSortedStateNames() {
		if alias := s.aliases[stateName]; alias != stateName {
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("\t%s : %s", alias, stateName))
		}
	}

	return sb.String()
}

// FormatOneState attaches listener annotations as a note. States without
// listeners need no explicit definition.
func (s *MermaidGraphStyle) FormatOneState(state *State) string {
	if !state.HasListeners() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n\tnote right of %s", s.getSanitizedStateName(state.StateName)))
	for _, line := range listenerLines(state) {
		sb.WriteString("\n\t\t")
		sb.WriteString(line)
	}
	sb.WriteString("\n\tend note")
	return sb.String()
}

// FormatAllTransitions formats all transitions.
func (s *MermaidGraphStyle) FormatAllTransitions(transitions []*Transition) []string {
	return FormatTransitions(s, transitions)
}

// FormatOneTransition formats a single transition.
func (s *MermaidGraphStyle) FormatOneTransition(sourceNodeName, link, destinationNodeName string) string {
	sanitizedSource := s.getSanitizedStateName(sourceNodeName)
	sanitizedDest := s.getSanitizedStateName(destinationNodeName)

	if link == "" {
		return fmt.Sprintf("\t%s --> %s", sanitizedSource, sanitizedDest)
	}
	return fmt.Sprintf("\t%s --> %s : %s", sanitizedSource, sanitizedDest, link)
}

// GetInitialTransition returns the text for the initial state transition.
func (s *MermaidGraphStyle) GetInitialTransition(initialState *hookfsm.StateInfo) string {
	if initialState == nil {
		return ""
	}
	return fmt.Sprintf("\n[*] --> %s", s.getSanitizedStateName(initialState.String()))
}

// buildAliases assigns every state a unique sanitized node name.
func (s *MermaidGraphStyle) buildAliases() {
	taken := make(map[string]bool)

	for _, stateName := range s.graph.getSortedStateNames() {
		sanitized := sanitizeStateName(stateName)
		if sanitized == stateName {
			taken[sanitized] = true
		}
	}

	for _, stateName := range s.graph.getSortedStateNames() {
		sanitized := sanitizeStateName(stateName)
		if sanitized != stateName {
			candidate := sanitized
			for count := 1; taken[candidate] || s.graph.States[candidate] != nil; count++ {
				candidate = fmt.Sprintf("%s_%d", sanitized, count)
			}
			sanitized = candidate
			taken[sanitized] = true
		}
		s.aliases[stateName] = sanitized
	}
}

// getSanitizedStateName returns the sanitized name for a state.
func (s *MermaidGraphStyle) getSanitizedStateName(stateName string) string {
	if alias, ok := s.aliases[stateName]; ok {
		return alias
	}
	return stateName
}

// sanitizeStateName removes characters that would cause invalid Mermaid graphs.
func sanitizeStateName(name string) string {
	var result strings.Builder
	for _, c := range name {
		if !unicode.IsSpace(c) && c != ':' && c != '-' {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// MermaidGraph generates a Mermaid graph from machine info.
func MermaidGraph(machineInfo *hookfsm.MachineInfo, direction *Direction) string {
	graph := NewStateGraph(machineInfo)
	return graph.ToGraph(NewMermaidGraphStyle(graph, direction))
}
