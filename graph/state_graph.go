package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atlekbai/hookfsm"
)

// StateGraph generates a symbolic representation of the graph structure.
type StateGraph struct {
	// InitialState is the initial state of the machine.
	InitialState *hookfsm.StateInfo

	// States contains all states in the graph, indexed by state name.
	States map[string]*State

	// Transitions contains all transitions in the graph.
	Transitions []*Transition
}

// NewStateGraph creates a new state graph from machine info.
func NewStateGraph(machineInfo *hookfsm.MachineInfo) *StateGraph {
	sg := &StateGraph{
		InitialState: machineInfo.InitialState,
		States:       make(map[string]*State),
	}

	sg.addStates(machineInfo)
	sg.addTransitions(machineInfo)

	return sg
}

func (sg *StateGraph) addStates(machineInfo *hookfsm.MachineInfo) {
	for _, stateInfo := range machineInfo.States {
		stateName := stateInfo.String()
		if _, exists := sg.States[stateName]; exists {
			continue
		}
		sg.States[stateName] = &State{
			StateName: stateName,
			NodeName:  stateName,
			EntryListeners: concat(
				stateInfo.ListenerDescriptions(hookfsm.BeforeEnter),
				stateInfo.ListenerDescriptions(hookfsm.AfterEnter),
			),
			ExitListeners: concat(
				stateInfo.ListenerDescriptions(hookfsm.BeforeLeave),
				stateInfo.ListenerDescriptions(hookfsm.AfterLeave),
			),
			DataListeners: stateInfo.ListenerDescriptions(hookfsm.Data),
			StateInfo:     stateInfo,
		}
	}
}

func (sg *StateGraph) addTransitions(machineInfo *hookfsm.MachineInfo) {
	for _, stateInfo := range machineInfo.States {
		fromState := sg.States[stateInfo.String()]

		for _, ti := range stateInfo.Transitions {
			toState, ok := sg.States[ti.Destination.String()]
			if !ok {
				continue
			}

			trans := &Transition{
				Link:             ti.Name,
				SourceState:      fromState,
				DestinationState: toState,
			}
			sg.Transitions = append(sg.Transitions, trans)
			fromState.Leaving = append(fromState.Leaving, trans)
			if fromState != toState {
				toState.Arriving = append(toState.Arriving, trans)
			}
		}
	}
}

// ToGraph converts the state graph to a string representation using the specified style.
func (sg *StateGraph) ToGraph(style Style) string {
	var sb strings.Builder

	sb.WriteString(style.GetPrefix())

	for _, stateName := range sg.getSortedStateNames() {
		sb.WriteString(style.FormatOneState(sg.States[stateName]))
	}

	lines := style.FormatAllTransitions(sg.getSortedTransitions())
	for _, line := range lines {
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	sb.WriteString(style.GetInitialTransition(sg.InitialState))

	return sb.String()
}

// getSortedStateNames returns state names in sorted order for deterministic output.
func (sg *StateGraph) getSortedStateNames() []string {
	names := make([]string, 0, len(sg.States))
	for name := range sg.States {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getSortedTransitions returns transitions sorted by source state, then destination state, then link.
func (sg *StateGraph) getSortedTransitions() []*Transition {
	sorted := make([]*Transition, len(sg.Transitions))
	copy(sorted, sg.Transitions)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i], sorted[j]
		if ti.SourceState.StateName != tj.SourceState.StateName {
			return ti.SourceState.StateName < tj.SourceState.StateName
		}
		if ti.DestinationState.StateName != tj.DestinationState.StateName {
			return ti.DestinationState.StateName < tj.DestinationState.StateName
		}
		return ti.Link < tj.Link
	})
	return sorted
}

func concat(a, b []string) []string {
	if len(a)+len(b) == 0 {
		return nil
	}
	result := make([]string, 0, len(a)+len(b))
	result = append(result, a...)
	return append(result, b...)
}

func (sg *StateGraph) String() string {
	return fmt.Sprintf("StateGraph { States = %d, Transitions = %d }", len(sg.States), len(sg.Transitions))
}
