package graph

import (
	"fmt"
	"strings"

	"github.com/atlekbai/hookfsm"
)

// Style defines the interface for formatting state graphs.
type Style interface {
	// GetPrefix returns the text that starts a new graph.
	GetPrefix() string

	// GetInitialTransition returns the text for the initial state transition.
	GetInitialTransition(initialState *hookfsm.StateInfo) string

	// FormatOneState formats a single state.
	FormatOneState(state *State) string

	// FormatAllTransitions formats all transitions.
	FormatAllTransitions(transitions []*Transition) []string

	// FormatOneTransition formats a single transition.
	FormatOneTransition(sourceNodeName, link, destinationNodeName string) string
}

// Direction is the layout direction of a rendered graph.
type Direction int

const (
	// TopToBottom flows from top to bottom.
	TopToBottom Direction = iota
	// BottomToTop flows from bottom to top.
	BottomToTop
	// LeftToRight flows from left to right.
	LeftToRight
	// RightToLeft flows from right to left.
	RightToLeft
)

// String returns the code shared by DOT rankdir and Mermaid direction.
func (d Direction) String() string {
	switch d {
	case TopToBottom:
		return "TB"
	case BottomToTop:
		return "BT"
	case LeftToRight:
		return "LR"
	case RightToLeft:
		return "RL"
	default:
		return "TB"
	}
}

// ParseDirection parses a direction code such as "LR". Case is ignored.
func ParseDirection(code string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "TB", "TD":
		return TopToBottom, nil
	case "BT":
		return BottomToTop, nil
	case "LR":
		return LeftToRight, nil
	case "RL":
		return RightToLeft, nil
	default:
		return TopToBottom, fmt.Errorf("unknown graph direction %q, want one of TB, BT, LR, RL", code)
	}
}

// FormatTransitions is a helper that formats all transitions using the given style.
func FormatTransitions(style Style, transitions []*Transition) []string {
	var lines []string

	for _, transit := range transitions {
		if transit.SourceState == nil || transit.DestinationState == nil {
			continue
		}
		lines = append(lines, style.FormatOneTransition(
			transit.SourceState.NodeName,
			transit.Link,
			transit.DestinationState.NodeName,
		))
	}

	return lines
}

// listenerLines returns the "entry / x", "exit / y" and "data / z" annotations of a state.
func listenerLines(state *State) []string {
	var lines []string
	for _, l := range state.EntryListeners {
		lines = append(lines, "entry / "+l)
	}
	for _, l := range state.ExitListeners {
		lines = append(lines, "exit / "+l)
	}
	for _, l := range state.DataListeners {
		lines = append(lines, "data / "+l)
	}
	return lines
}
