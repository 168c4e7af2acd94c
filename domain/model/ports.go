package model

import (
	"context"
	"time"
)

// ClusterPort is the domain port for Azure control plane operations.
// The AKS adapter implements it; use cases never touch the SDK directly.
type ClusterPort interface {
	// EnsureResourceGroup creates the resource group if it does not exist.
	EnsureResourceGroup(ctx context.Context, settings *DeploymentSettings) error
	// CreateCluster creates the managed cluster and blocks until the
	// control plane reports success.
	CreateCluster(ctx context.Context, settings *DeploymentSettings) error
	// Kubeconfig fetches user credentials for the created cluster.
	Kubeconfig(ctx context.Context, settings *DeploymentSettings) ([]byte, error)
	// DeleteResourceGroup tears down the resource group and everything in it.
	DeleteResourceGroup(ctx context.Context, settings *DeploymentSettings) error
}

// ChartRelease describes one Helm release of the BinderHub chart.
type ChartRelease struct {
	ReleaseName string
	Namespace   string
	RepoURL     string
	ChartName   string
	Version     string
	// Rendered values documents, merged in order by Helm.
	ConfigYAML []byte
	SecretYAML []byte
}

// HubPort is the domain port for in-cluster operations against the
// deployed hub. Implementations are bound to one cluster's kubeconfig.
type HubPort interface {
	// WaitNodesReady blocks until nodeCount nodes report Ready, polling
	// at a fixed interval, or fails with ErrClusterNotReady on timeout.
	WaitNodesReady(ctx context.Context, nodeCount int, timeout time.Duration) error
	// EnsureHubRBAC creates the hub namespace, service account and
	// cluster role binding (idempotent).
	EnsureHubRBAC(ctx context.Context, namespace string) error
	// InstallChart installs the release, upgrading when it already exists.
	InstallChart(ctx context.Context, rel ChartRelease) error
	// UpgradeChart upgrades an existing release in place.
	UpgradeChart(ctx context.Context, rel ChartRelease) error
	// WaitServiceIP blocks until the named service has an external
	// address, or fails with ErrServiceIPNotAssigned on timeout.
	WaitServiceIP(ctx context.Context, namespace, service string, timeout time.Duration) (string, error)
	// PodLogs returns the logs of pods matching the label selector.
	PodLogs(ctx context.Context, namespace, labelSelector string) (string, error)
}

// HubPortFactory builds a HubPort from kubeconfig bytes obtained after
// cluster creation.
type HubPortFactory func(ctx context.Context, kubeconfig []byte) (HubPort, error)
