package main

import (
	"context"
	"os"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/binderhub-ops/binderops/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "binderops",
		Short:   "Deploy and operate BinderHub on Azure Kubernetes Service",
		Long:    "Deploy and operate BinderHub on Azure Kubernetes Service",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultHistory := os.Getenv("BINDEROPS_HISTORY_DB")
	if defaultHistory == "" {
		defaultHistory = "sqlite:binderops.db"
	}
	cmd.PersistentFlags().String("history-db", defaultHistory, "Run history database URL (env BINDEROPS_HISTORY_DB) (sqlite:/path/to.db | none)")
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env BINDEROPS_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-output", "-", "Log destination (- | none | path; empty for an auto-named transcript file)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("BINDEROPS_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		output, _ := c.Flags().GetString("log-output")
		lf, err := logging.NewLogFile(".", output)
		if err != nil {
			return err
		}
		runLogFile = lf
		l, err := logging.NewWithWriter(format, slog.LevelInfo, lf.Writer())
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdDeploy())
	cmd.AddCommand(newCmdUpgrade())
	cmd.AddCommand(newCmdTeardown())
	cmd.AddCommand(newCmdLogs())
	cmd.AddCommand(newCmdHistory())
	return cmd
}

// runLogFile is the transcript destination opened in PersistentPreRunE.
var runLogFile *logging.LogFile

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if runLogFile != nil {
		defer runLogFile.Close()
	}
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
