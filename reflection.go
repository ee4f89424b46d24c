package hookfsm

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// InvocationInfo describes a registered listener.
type InvocationInfo struct {
	// MethodName is the name of the invoked function.
	MethodName string
	// description is the user-specified description (can be empty).
	description string
}

// DefaultFunctionDescription is the text returned for compiler-generated functions
// where the caller has not specified a description.
var DefaultFunctionDescription = "Function"

// NullString is the string representation of a null value.
const NullString = "<null>"

// NewInvocationInfo creates a new InvocationInfo.
func NewInvocationInfo(methodName, description string) InvocationInfo {
	return InvocationInfo{
		MethodName:  methodName,
		description: description,
	}
}

// CreateInvocationInfo creates InvocationInfo from a function and description.
func CreateInvocationInfo(fn any, description string) InvocationInfo {
	return NewInvocationInfo(getFunctionName(fn), description)
}

// Description returns the description of the invoked function.
// Returns:
// 1. The user-specified description, if any
// 2. Otherwise, if the function is a closure, DefaultFunctionDescription
// 3. Otherwise, the function name without its package qualifier
func (i InvocationInfo) Description() string {
	if i.description != "" {
		return i.description
	}
	if i.MethodName == "" {
		return NullString
	}
	if strings.Contains(i.MethodName, ".func") {
		return DefaultFunctionDescription
	}
	if idx := strings.LastIndex(i.MethodName, "."); idx >= 0 {
		return i.MethodName[idx+1:]
	}
	return i.MethodName
}

// getFunctionName returns the name of a function.
func getFunctionName(fn any) string {
	if fn == nil {
		return ""
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	name := runtime.FuncForPC(v.Pointer()).Name()
	// Extract just the function name from the full path
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// MachineInfo exposes the states, transitions, and listeners of a state machine.
type MachineInfo struct {
	// InitialState is the state the machine enters on first use.
	InitialState *StateInfo

	// States contains all declared states, in declaration order.
	States []*StateInfo

	// StateType is a string representation of the state type.
	StateType string
}

// StateInfo describes one declared state through the reflection API.
type StateInfo struct {
	// UnderlyingState is the value this state represents.
	UnderlyingState any

	// Index is the declaration index of the state.
	Index int

	// Listeners are the currently registered listeners per phase.
	Listeners map[Phase][]InvocationInfo

	// Transitions are the transitions leaving this state.
	Transitions []TransitionInfo
}

// String returns the string representation of the state.
func (s *StateInfo) String() string {
	if s == nil || s.UnderlyingState == nil {
		return NullString
	}
	return fmt.Sprintf("%v", s.UnderlyingState)
}

// ListenerDescriptions returns the descriptions of listeners for a phase.
func (s *StateInfo) ListenerDescriptions(phase Phase) []string {
	infos := s.Listeners[phase]
	descriptions := make([]string, len(infos))
	for i, info := range infos {
		descriptions[i] = info.Description()
	}
	return descriptions
}

// TransitionInfo describes a declared transition.
type TransitionInfo struct {
	// Name is the named link, empty for unnamed transitions.
	Name string

	// Destination is the state entered by this transition.
	Destination *StateInfo
}

// IsReentry returns true if the transition leads back to its source.
func (t TransitionInfo) IsReentry(source *StateInfo) bool {
	return t.Destination == source
}

// GetInfo returns information about the machine's table and listeners for introspection.
func (sm *StateMachine[S]) GetInfo() *MachineInfo {
	states := sm.table.States()
	infos := make(map[S]*StateInfo, len(states))
	result := &MachineInfo{
		States:    make([]*StateInfo, 0, len(states)),
		StateType: fmt.Sprintf("%T", sm.initial),
	}

	for i, s := range states {
		info := &StateInfo{
			UnderlyingState: s,
			Index:           i,
			Listeners:       make(map[Phase][]InvocationInfo),
		}
		if rep, ok := sm.representations[s]; ok {
			for _, phase := range Phases {
				if d := rep.descriptions(phase); len(d) > 0 {
					info.Listeners[phase] = d
				}
			}
		}
		infos[s] = info
		result.States = append(result.States, info)
	}

	for _, tr := range sm.table.Transitions() {
		from := infos[tr.Source]
		from.Transitions = append(from.Transitions, TransitionInfo{
			Name:        tr.Name,
			Destination: infos[tr.Destination],
		})
	}

	result.InitialState = infos[sm.initial]
	return result
}
