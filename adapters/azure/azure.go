// Package azure implements the ClusterPort against the Azure control
// plane using the ARM SDK clients.
package azure

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

// Driver holds the credential and subscription scope for one deployment.
type Driver struct {
	TokenCredential azcore.TokenCredential
	SubscriptionID  string
}

// NewDriver resolves the credential for the settings' login mode and
// returns a driver bound to the configured subscription.
func NewDriver(settings *model.DeploymentSettings) (*Driver, error) {
	cred, err := NewTokenCredential(settings.Credential)
	if err != nil {
		return nil, err
	}
	return &Driver{TokenCredential: cred, SubscriptionID: settings.Subscription}, nil
}

var _ model.ClusterPort = (*Driver)(nil)

// withMethodLogger emits paired start/end log lines for a driver method
// and returns a context carrying the method-scoped logger.
func (d *Driver) withMethodLogger(ctx context.Context, method string) (context.Context, func(err error)) {
	startAt := time.Now()
	logger := logging.FromContext(ctx).With("driver", "AKS."+method)
	ctx = logging.WithLogger(ctx, logger)
	logger.Info(ctx, "AKS:"+method+":START")
	cleanup := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, "AKS:"+method+":END:OK", "elapsed", elapsed)
		} else {
			logger.Warn(ctx, "AKS:"+method+":END:FAILED", "err", err.Error(), "elapsed", elapsed)
		}
	}
	return ctx, cleanup
}
