package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atlekbai/hookfsm"
	"github.com/atlekbai/hookfsm/definition"
)

type stepKind string

const (
	stepTo   stepKind = "to"
	stepLink stepKind = "link"
	stepData stepKind = "data"
	stepSend stepKind = "send"
)

// step is one machine operation given on the command line.
type step struct {
	kind  stepKind
	arg   string
	value string
}

func (s step) String() string {
	if s.kind == stepSend {
		return fmt.Sprintf("%s=%s:%s", s.kind, s.arg, s.value)
	}
	return fmt.Sprintf("%s=%s", s.kind, s.arg)
}

// parseStep parses to=STATE, link=NAME, data=VALUE or send=STATE:VALUE.
func parseStep(raw string) (step, error) {
	kind, arg, ok := strings.Cut(raw, "=")
	if !ok || arg == "" {
		return step{}, fmt.Errorf("invalid step %q, want KIND=VALUE", raw)
	}

	switch s := (step{kind: stepKind(kind), arg: arg}); s.kind {
	case stepTo, stepLink, stepData:
		return s, nil
	case stepSend:
		state, value, ok := strings.Cut(arg, ":")
		if !ok || state == "" {
			return step{}, fmt.Errorf("invalid step %q, want send=STATE:VALUE", raw)
		}
		s.arg, s.value = state, value
		return s, nil
	default:
		return step{}, fmt.Errorf("unknown step kind %q in %q, want to, link, data or send", kind, raw)
	}
}

func (s step) apply(sm *hookfsm.StateMachine[string]) (string, error) {
	switch s.kind {
	case stepTo:
		return sm.ChangeState(s.arg, nil)
	case stepLink:
		return sm.Transition(s.arg, nil)
	case stepData:
		return sm.SendData(s.arg)
	case stepSend:
		return sm.SendStateData(s.arg, s.value)
	default:
		return sm.State(), fmt.Errorf("unknown step kind %q", s.kind)
	}
}

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE STEP...",
		Short: "Drive a machine through a sequence of steps and print its final state",
		Long: strings.TrimSpace(`
Drive a machine built from FILE through STEPs, in order:

  to=STATE          change directly to STATE
  link=NAME         follow the named link NAME
  data=VALUE        send VALUE to the data listeners of the current state
  send=STATE:VALUE  change to STATE carrying VALUE, then send VALUE

Illegal changes and unknown links are logged and leave the state unchanged.`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := make([]step, 0, len(args)-1)
			for _, raw := range args[1:] {
				s, err := parseStep(raw)
				if err != nil {
					return err
				}
				steps = append(steps, s)
			}

			def, err := definition.Load(args[0])
			if err != nil {
				return err
			}

			final, err := runSteps(a, def, steps)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), final)
			return err
		},
	}
}

// runSteps builds a machine that logs every committed change and applies steps.
func runSteps(a *app, def *definition.Definition, steps []step) (string, error) {
	sm, err := def.NewStateMachine(hookfsm.WithReporter[string](hookfsm.NewZerologReporter(a.log)))
	if err != nil {
		return "", err
	}

	for _, state := range sm.Table().States() {
		sm.AfterEnter(state, func(ev *hookfsm.ChangeEvent[string]) error {
			e := a.log.Info().Str("machine", def.Name).Str("to", ev.Target())
			if from, ok := ev.Previous(); ok {
				e = e.Str("from", from)
			}
			if ev.Data != nil {
				e = e.Interface("data", ev.Data)
			}
			e.Msg("entered state")
			return nil
		})
	}

	state := sm.State()
	for _, s := range steps {
		a.log.Debug().Stringer("step", s).Str("state", state).Msg("applying step")
		if state, err = s.apply(sm); err != nil {
			return state, fmt.Errorf("step %s: %w", s, err)
		}
	}
	return state, nil
}
