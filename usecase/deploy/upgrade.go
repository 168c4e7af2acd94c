package deploy

import (
	"context"

	"github.com/binderhub-ops/binderops/config/hubvalues"
	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

// UpgradeInput represents a command to upgrade an existing hub release.
type UpgradeInput struct {
	Settings *model.DeploymentSettings
}

// Upgrade re-renders the config values against the currently assigned
// external address and upgrades the chart in place. The secret document
// is not re-rendered; the release keeps its deploy-time tokens.
func (u *UseCase) Upgrade(ctx context.Context, cmd UpgradeInput) error {
	s := cmd.Settings

	renderer, err := hubvalues.NewRenderer(s)
	if err != nil {
		return err
	}

	rec := startRun(ctx, u.Runs, s, "upgrade")
	err = u.upgrade(ctx, rec, s, renderer)
	rec.finish(ctx, err)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info(ctx, "hub upgraded", "hub", s.HubName, "version", s.ChartVersion)
	return nil
}

func (u *UseCase) upgrade(ctx context.Context, rec *recorder, s *model.DeploymentSettings, renderer *hubvalues.Renderer) error {
	kubeconfig, err := u.ClusterPort.Kubeconfig(ctx, s)
	if err != nil {
		return err
	}
	hub, err := u.HubPortFactory(ctx, kubeconfig)
	if err != nil {
		return err
	}

	var externalIP string
	err = rec.stage(ctx, model.StageServiceIP, func() error {
		ip, werr := hub.WaitServiceIP(ctx, s.HubName, ProxyServiceName, u.serviceTimeout())
		externalIP = ip
		return werr
	})
	if err != nil {
		return err
	}

	return rec.stage(ctx, model.StageChartUpgrade, func() error {
		configYAML, rerr := renderer.Config(externalIP)
		if rerr != nil {
			return rerr
		}
		return hub.UpgradeChart(ctx, release(s, configYAML, nil))
	})
}
