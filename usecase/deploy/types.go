package deploy

import (
	"time"

	"github.com/binderhub-ops/binderops/domain"
	"github.com/binderhub-ops/binderops/domain/model"
)

// Chart coordinates for the BinderHub release.
const (
	ChartRepoURL = "https://jupyterhub.github.io/helm-chart"
	ChartName    = "binderhub"

	// ProxyServiceName is the LoadBalancer service that exposes the hub.
	ProxyServiceName = "proxy-public"
)

// Default wait bounds for the polling stages.
const (
	DefaultNodeTimeout    = 30 * time.Minute
	DefaultServiceTimeout = 10 * time.Minute
)

// UseCase wires the ports and repositories needed for hub deployment
// use cases. Runs may be nil, in which case no history is recorded.
type UseCase struct {
	ClusterPort    model.ClusterPort
	HubPortFactory model.HubPortFactory
	Runs           domain.RunRepository
	NodeTimeout    time.Duration
	ServiceTimeout time.Duration
}

func (u *UseCase) nodeTimeout() time.Duration {
	if u.NodeTimeout > 0 {
		return u.NodeTimeout
	}
	return DefaultNodeTimeout
}

func (u *UseCase) serviceTimeout() time.Duration {
	if u.ServiceTimeout > 0 {
		return u.ServiceTimeout
	}
	return DefaultServiceTimeout
}

func release(s *model.DeploymentSettings, config, secret []byte) model.ChartRelease {
	return model.ChartRelease{
		ReleaseName: s.HubName,
		Namespace:   s.HubName,
		RepoURL:     ChartRepoURL,
		ChartName:   ChartName,
		Version:     s.ChartVersion,
		ConfigYAML:  config,
		SecretYAML:  secret,
	}
}
