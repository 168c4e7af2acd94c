package deploy

import (
	"context"

	"github.com/binderhub-ops/binderops/config/hubvalues"
	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

// DeployInput represents a command to deploy a hub.
type DeployInput struct {
	Settings *model.DeploymentSettings
}

// DeployOutput reports where the deployed hub is reachable.
type DeployOutput struct {
	ExternalIP string
	HubURL     string
}

// Deploy provisions the Azure resources, installs the BinderHub chart
// and re-renders the release once the external address is known.
func (u *UseCase) Deploy(ctx context.Context, cmd DeployInput) (*DeployOutput, error) {
	s := cmd.Settings
	log := logging.FromContext(ctx)

	// Rendering validates the settings the chart depends on; nothing
	// is provisioned until the templates are known to be complete.
	renderer, err := hubvalues.NewRenderer(s)
	if err != nil {
		return nil, err
	}
	configYAML, err := renderer.Config("")
	if err != nil {
		return nil, err
	}
	secretYAML, err := renderer.Secret()
	if err != nil {
		return nil, err
	}

	rec := startRun(ctx, u.Runs, s, "deploy")
	out, err := u.deploy(ctx, rec, s, renderer, configYAML, secretYAML)
	rec.finish(ctx, err)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "hub deployed", "hub", s.HubName, "url", out.HubURL)
	return out, nil
}

func (u *UseCase) deploy(ctx context.Context, rec *recorder, s *model.DeploymentSettings, renderer *hubvalues.Renderer, configYAML, secretYAML []byte) (*DeployOutput, error) {
	err := rec.stage(ctx, model.StageResourceGroup, func() error {
		return u.ClusterPort.EnsureResourceGroup(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	err = rec.stage(ctx, model.StageClusterCreate, func() error {
		return u.ClusterPort.CreateCluster(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	kubeconfig, err := u.ClusterPort.Kubeconfig(ctx, s)
	if err != nil {
		return nil, err
	}
	hub, err := u.HubPortFactory(ctx, kubeconfig)
	if err != nil {
		return nil, err
	}

	// The chart schedules pods immediately; installing before the node
	// pool is ready produces a long tail of scheduling failures.
	err = rec.stage(ctx, model.StageNodesReady, func() error {
		return hub.WaitNodesReady(ctx, s.NodeCount, u.nodeTimeout())
	})
	if err != nil {
		return nil, err
	}

	err = rec.stage(ctx, model.StageHubRBAC, func() error {
		return hub.EnsureHubRBAC(ctx, s.HubName)
	})
	if err != nil {
		return nil, err
	}

	err = rec.stage(ctx, model.StageChartInstall, func() error {
		return hub.InstallChart(ctx, release(s, configYAML, secretYAML))
	})
	if err != nil {
		return nil, err
	}

	var externalIP string
	err = rec.stage(ctx, model.StageServiceIP, func() error {
		ip, werr := hub.WaitServiceIP(ctx, s.HubName, ProxyServiceName, u.serviceTimeout())
		externalIP = ip
		return werr
	})
	if err != nil {
		return nil, err
	}

	// Second render pass pins hub.url to the discovered address so the
	// hub advertises a stable URL.
	err = rec.stage(ctx, model.StageChartUpgrade, func() error {
		configYAML, rerr := renderer.Config(externalIP)
		if rerr != nil {
			return rerr
		}
		return hub.UpgradeChart(ctx, release(s, configYAML, secretYAML))
	})
	if err != nil {
		return nil, err
	}

	return &DeployOutput{ExternalIP: externalIP, HubURL: "http://" + externalIP}, nil
}
