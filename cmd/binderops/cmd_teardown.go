package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binderhub-ops/binderops/usecase/deploy"
)

// newCmdTeardown deletes the resource group and everything in it.
func newCmdTeardown() *cobra.Command {
	var file string
	var container bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Delete the hub's resource group and all resources in it",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			settings, err := resolveSettings(container, file)
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("teardown deletes resource group %s and everything in it; re-run with --yes to confirm", settings.ResourceGroupName)
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "teardown", settings.HubName)
			defer func() { cleanup(err) }()

			u, err := buildUseCase(cmd.Flags(), settings)
			if err != nil {
				return err
			}
			return u.Teardown(ctx, deploy.TeardownInput{Settings: settings})
		},
	}

	cmd.Flags().StringVarP(&file, "config", "f", "config.json", "Path to the deployment config document")
	cmd.Flags().BoolVar(&container, "container", false, "Resolve all settings from the environment (automation mode)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion without prompting")
	return cmd
}
