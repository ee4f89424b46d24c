package graph

import (
	"fmt"
	"strings"

	"github.com/atlekbai/hookfsm"
)

// Format selects the output language of Render.
type Format string

const (
	// FormatDot renders a UML style Graphviz DOT graph.
	FormatDot Format = "dot"
	// FormatMermaid renders a Mermaid state diagram.
	FormatMermaid Format = "mermaid"
)

// ParseFormat parses a format name. Case is ignored.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatDot, FormatMermaid:
		return f, nil
	default:
		return "", fmt.Errorf("unknown graph format %q, want dot or mermaid", name)
	}
}

// Render renders machineInfo in the given format and direction.
func Render(machineInfo *hookfsm.MachineInfo, format Format, direction Direction) (string, error) {
	graph := NewStateGraph(machineInfo)

	switch format {
	case FormatDot:
		return graph.ToGraph(&UmlDotGraphStyle{Direction: direction}), nil
	case FormatMermaid:
		return graph.ToGraph(NewMermaidGraphStyle(graph, &direction)), nil
	default:
		return "", fmt.Errorf("unknown graph format %q", format)
	}
}
