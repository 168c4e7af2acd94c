package main

import (
	"github.com/spf13/cobra"

	"github.com/binderhub-ops/binderops/usecase/deploy"
)

// newCmdUpgrade re-renders the release values and upgrades the chart.
func newCmdUpgrade() *cobra.Command {
	var file string
	var container bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade an existing BinderHub release",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			settings, err := resolveSettings(container, file)
			if err != nil {
				return err
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "upgrade", settings.HubName)
			defer func() { cleanup(err) }()

			u, err := buildUseCase(cmd.Flags(), settings)
			if err != nil {
				return err
			}
			return u.Upgrade(ctx, deploy.UpgradeInput{Settings: settings})
		},
	}

	cmd.Flags().StringVarP(&file, "config", "f", "config.json", "Path to the deployment config document")
	cmd.Flags().BoolVar(&container, "container", false, "Resolve all settings from the environment (automation mode)")
	return cmd
}
