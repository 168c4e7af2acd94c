package deploy

import (
	"context"

	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

// TeardownInput represents a command to tear down a hub deployment.
type TeardownInput struct {
	Settings *model.DeploymentSettings
}

// Teardown deletes the resource group and everything in it.
func (u *UseCase) Teardown(ctx context.Context, cmd TeardownInput) error {
	s := cmd.Settings
	rec := startRun(ctx, u.Runs, s, "teardown")
	err := rec.stage(ctx, model.StageResourceGroup, func() error {
		return u.ClusterPort.DeleteResourceGroup(ctx, s)
	})
	rec.finish(ctx, err)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info(ctx, "hub torn down", "hub", s.HubName, "resource_group", s.ResourceGroupName)
	return nil
}
