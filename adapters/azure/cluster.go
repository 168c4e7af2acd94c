package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice"

	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

// CreateCluster creates the managed AKS cluster and blocks until the
// control plane reports success. A cluster that already exists in the
// Succeeded state is left alone so the pipeline can be re-run.
func (d *Driver) CreateCluster(ctx context.Context, settings *model.DeploymentSettings) (err error) {
	ctx, done := d.withMethodLogger(ctx, "CreateCluster")
	defer func() { done(err) }()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	log := logging.FromContext(ctx)

	client, err := armcontainerservice.NewManagedClustersClient(d.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("%w: create managed clusters client: %v", model.ErrClusterCreate, err)
	}

	if existing, gerr := client.Get(ctx, settings.ResourceGroupName, settings.ClusterName, nil); gerr == nil {
		if existing.Properties != nil && existing.Properties.ProvisioningState != nil &&
			*existing.Properties.ProvisioningState == "Succeeded" {
			log.Info(ctx, "cluster already provisioned",
				"resource_group", settings.ResourceGroupName,
				"cluster", settings.ClusterName,
			)
			return nil
		}
	}

	params := armcontainerservice.ManagedCluster{
		Location: to.Ptr(settings.Location),
		Tags: map[string]*string{
			"managed-by": to.Ptr("binderops"),
			"hub-name":   to.Ptr(settings.HubName),
		},
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: to.Ptr(armcontainerservice.ResourceIdentityTypeSystemAssigned),
		},
		Properties: &armcontainerservice.ManagedClusterProperties{
			DNSPrefix: to.Ptr(settings.ClusterName),
			AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{
				{
					Name:   to.Ptr("nodepool1"),
					Count:  to.Ptr(int32(settings.NodeCount)),
					VMSize: to.Ptr(settings.VMSize),
					OSType: to.Ptr(armcontainerservice.OSTypeLinux),
					Type:   to.Ptr(armcontainerservice.AgentPoolTypeVirtualMachineScaleSets),
					Mode:   to.Ptr(armcontainerservice.AgentPoolModeSystem),
				},
			},
			ServicePrincipalProfile: &armcontainerservice.ManagedClusterServicePrincipalProfile{
				ClientID: to.Ptr("msi"),
			},
		},
	}

	poller, err := client.BeginCreateOrUpdate(ctx, settings.ResourceGroupName, settings.ClusterName, params, nil)
	if err != nil {
		return fmt.Errorf("%w: start creation of %s: %v", model.ErrClusterCreate, settings.ClusterName, err)
	}
	if _, err = poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrClusterCreate, settings.ClusterName, err)
	}

	log.Info(ctx, "cluster created",
		"resource_group", settings.ResourceGroupName,
		"cluster", settings.ClusterName,
		"node_count", settings.NodeCount,
		"vm_size", settings.VMSize,
	)
	return nil
}

// Kubeconfig fetches user credentials for the cluster.
func (d *Driver) Kubeconfig(ctx context.Context, settings *model.DeploymentSettings) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	client, err := armcontainerservice.NewManagedClustersClient(d.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create managed clusters client: %w", err)
	}
	creds, err := client.ListClusterUserCredentials(ctx, settings.ResourceGroupName, settings.ClusterName, nil)
	if err != nil {
		return nil, fmt.Errorf("get cluster credentials: %w", err)
	}
	if len(creds.Kubeconfigs) == 0 || len(creds.Kubeconfigs[0].Value) == 0 {
		return nil, fmt.Errorf("no kubeconfig returned for cluster %s", settings.ClusterName)
	}
	return creds.Kubeconfigs[0].Value, nil
}
