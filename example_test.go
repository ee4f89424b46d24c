package hookfsm_test

import (
	"fmt"

	"github.com/atlekbai/hookfsm"
)

func ExampleStateMachine_ChangeState() {
	table := hookfsm.NewTableBuilder("closed", "open", "locked").
		Link("open", "closed", "open").
		Link("close", "open", "closed").
		Link("lock", "closed", "locked").
		Link("unlock", "locked", "closed").
		MustBuild()

	sm := hookfsm.MustNewStateMachine(table, hookfsm.WithReporter[string](hookfsm.NopReporter{}))
	sm.BeforeLeave("closed", func(ev *hookfsm.ChangeEvent[string]) error {
		fmt.Printf("leaving closed for %s\n", ev.Target())
		return nil
	})
	sm.AfterEnter("locked", func(*hookfsm.ChangeEvent[string]) error {
		fmt.Println("locked")
		return nil
	})

	state, _ := sm.ChangeState("open", nil)
	fmt.Println(state)

	// open -> locked is not in the table, so nothing happens.
	state, _ = sm.ChangeState("locked", nil)
	fmt.Println(state)

	state, _ = sm.Transition("close", nil)
	fmt.Println(state)
	state, _ = sm.Transition("lock", nil)
	fmt.Println(state)

	// Output:
	// leaving closed for open
	// open
	// open
	// closed
	// leaving closed for locked
	// locked
	// locked
}

func ExampleStateMachine_SendData() {
	table := hookfsm.NewTableBuilder("idle", "busy").
		Permit("idle", "busy").
		Permit("busy", "idle").
		MustBuild()

	sm := hookfsm.MustNewStateMachine(table, hookfsm.WithReporter[string](hookfsm.NopReporter{}))
	sm.OnData("idle", func(data any) (hookfsm.Result[string], error) {
		if data == "job" {
			return hookfsm.Next("busy"), nil
		}
		return hookfsm.NoResult[string](), nil
	})
	sm.AfterEnter("busy", func(ev *hookfsm.ChangeEvent[string]) error {
		fmt.Printf("working on %v\n", ev.Data)
		return nil
	})

	state, _ := sm.SendData("noise")
	fmt.Println(state)
	state, _ = sm.SendData("job")
	fmt.Println(state)

	// Output:
	// idle
	// working on job
	// busy
}
