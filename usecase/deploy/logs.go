package deploy

import (
	"context"

	"github.com/binderhub-ops/binderops/domain/model"
)

// Pod label selectors for the hub's core components.
const (
	BinderSelector = "component=binder"
	HubSelector    = "component=hub"
)

// LogsInput represents a command to fetch hub pod logs.
type LogsInput struct {
	Settings *model.DeploymentSettings
	// Selector narrows the pods; defaults to the binder component.
	Selector string
}

// Logs fetches the logs of hub pods matching the selector.
func (u *UseCase) Logs(ctx context.Context, cmd LogsInput) (string, error) {
	s := cmd.Settings
	selector := cmd.Selector
	if selector == "" {
		selector = BinderSelector
	}

	kubeconfig, err := u.ClusterPort.Kubeconfig(ctx, s)
	if err != nil {
		return "", err
	}
	hub, err := u.HubPortFactory(ctx, kubeconfig)
	if err != nil {
		return "", err
	}
	return hub.PodLogs(ctx, s.HubName, selector)
}
