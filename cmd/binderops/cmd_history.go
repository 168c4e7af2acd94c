package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// newCmdHistory lists recorded deployment runs.
func newCmdHistory() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded deployment runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := buildRunRepository(cmd.Flags())
			if err != nil {
				return err
			}
			if runs == nil {
				return fmt.Errorf("run history is disabled (--history-db none)")
			}
			list, err := runs.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tHUB\tOPERATION\tSTATUS\tSTARTED\tDURATION")
			for _, run := range list {
				duration := "-"
				if run.FinishedAt != nil {
					duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					run.ID, run.HubName, run.Operation, run.Status,
					run.StartedAt.Format(time.RFC3339), duration)
				if verbose {
					for _, s := range run.Stages {
						msg := ""
						if s.Message != "" {
							msg = " (" + s.Message + ")"
						}
						fmt.Fprintf(w, "  %s\t%s%s\t\t\t\t\n", s.Stage, s.Status, msg)
					}
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show per-stage outcomes")
	return cmd
}
