package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

// EnsureResourceGroup creates or updates the deployment's resource group.
// CreateOrUpdate is idempotent on the ARM side, so re-running against an
// existing group is safe.
func (d *Driver) EnsureResourceGroup(ctx context.Context, settings *model.DeploymentSettings) (err error) {
	ctx, done := d.withMethodLogger(ctx, "EnsureResourceGroup")
	defer func() { done(err) }()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	client, err := armresources.NewResourceGroupsClient(d.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("%w: create resource groups client: %v", model.ErrResourceGroup, err)
	}

	params := armresources.ResourceGroup{
		Location: to.Ptr(settings.Location),
		Tags: map[string]*string{
			"managed-by": to.Ptr("binderops"),
			"hub-name":   to.Ptr(settings.HubName),
		},
	}
	if _, err = client.CreateOrUpdate(ctx, settings.ResourceGroupName, params, nil); err != nil {
		return fmt.Errorf("%w: create %s: %v", model.ErrResourceGroup, settings.ResourceGroupName, err)
	}

	logging.FromContext(ctx).Info(ctx, "resource group ready",
		"resource_group", settings.ResourceGroupName,
		"location", settings.Location,
	)
	return nil
}

// DeleteResourceGroup removes the resource group and every resource in
// it, blocking until the control plane finishes. A missing group is
// treated as already deleted.
func (d *Driver) DeleteResourceGroup(ctx context.Context, settings *model.DeploymentSettings) (err error) {
	ctx, done := d.withMethodLogger(ctx, "DeleteResourceGroup")
	defer func() { done(err) }()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	client, err := armresources.NewResourceGroupsClient(d.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("%w: create resource groups client: %v", model.ErrResourceGroup, err)
	}

	exists, err := client.CheckExistence(ctx, settings.ResourceGroupName, nil)
	if err == nil && !exists.Success {
		return nil
	}

	poller, err := client.BeginDelete(ctx, settings.ResourceGroupName, nil)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", model.ErrResourceGroup, settings.ResourceGroupName, err)
	}
	if _, err = poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("%w: delete %s: %v", model.ErrResourceGroup, settings.ResourceGroupName, err)
	}
	return nil
}
