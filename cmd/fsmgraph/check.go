package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/atlekbai/hookfsm/definition"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a definition and print a summary of its table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			a.log.Debug().Str("file", args[0]).Msg("definition is valid")
			return printSummary(cmd.OutOrStdout(), def)
		},
	}
}

func printSummary(w io.Writer, def *definition.Definition) error {
	table, err := def.Table()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d states, %d transitions, %d routes\n",
		def.Name, len(table.States()), len(table.Transitions()), len(def.Routes))
	fmt.Fprintf(w, "initial: %s\n", def.InitialState())
	for _, tr := range table.Transitions() {
		fmt.Fprintf(w, "  %s\n", tr)
	}
	for _, r := range def.Routes {
		fmt.Fprintf(w, "  %s [%s] -> %s\n", r.State, r.Data, r.To)
	}
	return nil
}
