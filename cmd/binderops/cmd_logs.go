package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binderhub-ops/binderops/usecase/deploy"
)

// newCmdLogs fetches the logs of the hub's pods.
func newCmdLogs() *cobra.Command {
	var file string
	var container bool
	var component string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Fetch logs of the hub's binder or hub pods",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			settings, err := resolveSettings(container, file)
			if err != nil {
				return err
			}

			var selector string
			switch component {
			case "binder":
				selector = deploy.BinderSelector
			case "hub":
				selector = deploy.HubSelector
			default:
				return fmt.Errorf("unsupported component: %s (binder|hub)", component)
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "logs", settings.HubName)
			defer func() { cleanup(err) }()

			u, err := buildUseCase(cmd.Flags(), settings)
			if err != nil {
				return err
			}
			out, err := u.Logs(ctx, deploy.LogsInput{Settings: settings, Selector: selector})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "config", "f", "config.json", "Path to the deployment config document")
	cmd.Flags().BoolVar(&container, "container", false, "Resolve all settings from the environment (automation mode)")
	cmd.Flags().StringVar(&component, "component", "binder", "Component to fetch logs for (binder|hub)")
	return cmd
}
