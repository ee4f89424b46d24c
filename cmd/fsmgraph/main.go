package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/atlekbai/hookfsm/internal/cliconfig"
)

var longHelp = strings.TrimSpace(`
fsmgraph checks, renders and drives state machines declared in YAML or TOML
definition files.

Configuration comes from flags, FSMGRAPH_* environment variables and an
optional .env file in the working directory. Flags always win.
`)

var exampleUsage = strings.TrimSpace(`
  fsmgraph check worker.yaml
  fsmgraph render worker.yaml --format mermaid --direction TB
  fsmgraph render worker.toml --output worker.dot --watch
  fsmgraph run worker.yaml link=start data=pause to=stopped
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	cfg cliconfig.Config
	log zerolog.Logger
}

// configure merges env values under explicitly set flags and builds the logger.
func (a *app) configure(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if err := cliconfig.LoadEnv(); err != nil {
		return err
	}
	envCfg, err := cliconfig.FromEnv()
	if err != nil {
		return err
	}
	cliconfig.ApplyEnvConfig(&a.cfg, envCfg, changed)

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	level, _ := a.cfg.Level()
	a.log = cliconfig.NewLogger(cmd.ErrOrStderr(), level)
	a.log.Debug().Interface("config", a.cfg).Msg("configuration")
	return nil
}

func newRootCommand() *cobra.Command {
	a := &app{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "fsmgraph",
		Short:         "Check, render and drive state machine definitions",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newCheckCommand(a),
		newRenderCommand(a),
		newRunCommand(a),
	)

	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log := cliconfig.Logger(zerolog.InfoLevel)
		log.Error().Err(err).Msg("fsmgraph")
		os.Exit(1)
	}
}
