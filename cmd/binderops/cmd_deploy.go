package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binderhub-ops/binderops/usecase/deploy"
)

// newCmdDeploy provisions the Azure resources and installs the hub.
func newCmdDeploy() *cobra.Command {
	var file string
	var container bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy BinderHub to a new AKS cluster",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			settings, err := resolveSettings(container, file)
			if err != nil {
				return err
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "deploy", settings.HubName)
			defer func() { cleanup(err) }()

			u, err := buildUseCase(cmd.Flags(), settings)
			if err != nil {
				return err
			}
			out, err := u.Deploy(ctx, deploy.DeployInput{Settings: settings})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "BinderHub deployed: %s\n", out.HubURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "config", "f", "config.json", "Path to the deployment config document")
	cmd.Flags().BoolVar(&container, "container", false, "Resolve all settings from the environment (automation mode)")
	return cmd
}
