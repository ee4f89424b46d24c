package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/atlekbai/hookfsm"
	"github.com/atlekbai/hookfsm/definition"
	"github.com/atlekbai/hookfsm/graph"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		output string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a definition as a DOT or Mermaid diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			render := func() error {
				return renderFile(a, path, output, cmd.OutOrStdout())
			}

			if err := render(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.log.Info().Str("file", path).Dur("debounce", a.cfg.WatchDebounce).Msg("watching for changes")
			return watchFile(ctx, path, a.cfg.WatchDebounce, a.log, func() {
				if err := render(); err != nil {
					a.log.Error().Err(err).Str("file", path).Msg("render failed")
					return
				}
				a.log.Info().Str("file", path).Msg("rendered")
			})
		},
	}

	cmd.Flags().StringVar(&a.cfg.Format, "format", a.cfg.Format, "output format (dot, mermaid)")
	cmd.Flags().StringVar(&a.cfg.Direction, "direction", a.cfg.Direction, "layout direction (TB, BT, LR, RL)")
	cmd.Flags().DurationVar(&a.cfg.WatchDebounce, "debounce", a.cfg.WatchDebounce, "delay before re-rendering after a change")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render whenever the definition changes")

	return cmd
}

// renderFile loads the definition at path and writes its diagram to output,
// or to stdout when output is empty.
func renderFile(a *app, path, output string, stdout io.Writer) error {
	def, err := definition.Load(path)
	if err != nil {
		return err
	}

	sm, err := def.NewStateMachine(hookfsm.WithReporter[string](hookfsm.NewZerologReporter(a.log)))
	if err != nil {
		return err
	}

	format, err := a.cfg.GraphFormat()
	if err != nil {
		return err
	}
	direction, err := a.cfg.GraphDirection()
	if err != nil {
		return err
	}

	text, err := graph.Render(sm.GetInfo(), format, direction)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = fmt.Fprintln(stdout, text)
		return err
	}
	if err := os.WriteFile(output, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
