// Package hookfsm provides a generic, embeddable finite state machine with
// lifecycle hooks and data routing.
//
// A machine is the authoritative model of which phase a subsystem is in.
// Other code attaches listeners to states without knowing how transitions are
// decided:
//
//   - A Table declares the closed set of states, the legal transitions between
//     them and optional named links
//   - before-enter and before-leave listeners can cancel a change
//   - after-enter and after-leave listeners observe committed changes
//   - data listeners receive payloads and may request a follow-up transition
//
// # Basic Usage
//
// Build a table once and share it between machines:
//
//	table := hookfsm.NewTableBuilder(Default, Running, Stopped).
//	    Link("run", Default, Running).
//	    Permit(Default, Stopped).
//	    Permit(Running, Stopped).
//	    MustBuild()
//
//	sm := hookfsm.MustNewStateMachine(table)
//
// Attach listeners:
//
//	sm.AfterEnter(Running, func(ev *hookfsm.ChangeEvent[State]) error {
//	    fmt.Println("running with", ev.Data)
//	    return nil
//	})
//
// Change state directly or through a named link:
//
//	state, err := sm.ChangeState(Stopped, nil)
//	state, err = sm.Transition("run", payload)
//
// # Dispatch Order
//
// A legal change from A to B fires before-leave(A), before-enter(B),
// after-leave(A), then after-enter(B). The machine enters its
// initial state lazily on first use and only fires after-enter for it.
//
// # Data Routing
//
// Data listeners turn payloads into transitions:
//
//	sm.OnData(Running, func(data any) (hookfsm.Result[State], error) {
//	    if data == "halt" {
//	        return hookfsm.Next(Stopped), nil
//	    }
//	    return hookfsm.NoResult[State](), nil
//	})
//
// # Errors and Diagnostics
//
// Illegal transitions and unknown links are not errors: they are reported on
// the machine's Reporter and the current state is returned unchanged. Errors
// are reserved for misuse: MissingTargetError, ReentrantTransitionError and
// MultipleResultsError are returned to the caller. Only the last two also
// propagate out of listeners; any other error returned by a listener,
// MissingTargetError included, is reported and dispatch continues with the
// next listener.
//
// # Graph Generation
//
// Export to DOT or Mermaid format:
//
//	import "github.com/atlekbai/hookfsm/graph"
//	dot := graph.UmlDotGraph(sm.GetInfo())
package hookfsm
