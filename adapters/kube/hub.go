package kube

import (
	"context"
	"time"

	"github.com/binderhub-ops/binderops/domain/model"
)

// Default poll intervals for the two readiness loops. The node loop is
// slower because VMSS instances take minutes to join; the service loop is
// faster because load-balancer address assignment is usually quick.
const (
	defaultNodePollInterval    = 15 * time.Second
	defaultServicePollInterval = 5 * time.Second
)

// HubClient implements model.HubPort for one cluster. Kubeconfig bytes
// are retained for Helm, which builds its own REST client.
type HubClient struct {
	Client     *Client
	Kubeconfig []byte

	// Poll intervals, overridable in tests.
	NodePollInterval    time.Duration
	ServicePollInterval time.Duration
}

// NewHubClient builds a HubClient from kubeconfig bytes.
func NewHubClient(ctx context.Context, kubeconfig []byte) (*HubClient, error) {
	c, err := NewClientFromKubeconfig(ctx, kubeconfig, &Options{UserAgent: "binderops"})
	if err != nil {
		return nil, err
	}
	return &HubClient{
		Client:              c,
		Kubeconfig:          kubeconfig,
		NodePollInterval:    defaultNodePollInterval,
		ServicePollInterval: defaultServicePollInterval,
	}, nil
}

var _ model.HubPort = (*HubClient)(nil)

// NewHubPort is the model.HubPortFactory for real clusters.
func NewHubPort(ctx context.Context, kubeconfig []byte) (model.HubPort, error) {
	return NewHubClient(ctx, kubeconfig)
}
