package deploycfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/binderhub-ops/binderops/domain/model"
)

// Environment variable names consumed in container mode.
const (
	EnvSPAppID               = "SP_APP_ID"
	EnvSPAppKey              = "SP_APP_KEY"
	EnvSPTenantID            = "SP_TENANT_ID"
	EnvResourceGroupName     = "RESOURCE_GROUP_NAME"
	EnvResourceGroupLocation = "RESOURCE_GROUP_LOCATION"
	EnvAzureSubscription     = "AZURE_SUBSCRIPTION"
	EnvBinderHubName         = "BINDERHUB_NAME"
	EnvBinderHubVersion      = "BINDERHUB_VERSION"
	EnvAKSNodeCount          = "AKS_NODE_COUNT"
	EnvAKSNodeVMSize         = "AKS_NODE_VM_SIZE"
	EnvContactEmail          = "CONTACT_EMAIL"
	EnvDockerUsername        = "DOCKER_USERNAME"
	EnvDockerPassword        = "DOCKER_PASSWORD"
	EnvDockerImagePrefix     = "DOCKER_IMAGE_PREFIX"
	EnvDockerOrganisation    = "DOCKER_ORGANISATION"
)

// requiredEnv is the full container-mode surface. Every variable must
// resolve to a non-empty value before any cloud call is made.
var requiredEnv = []string{
	EnvSPAppID,
	EnvSPAppKey,
	EnvSPTenantID,
	EnvResourceGroupName,
	EnvResourceGroupLocation,
	EnvAzureSubscription,
	EnvBinderHubName,
	EnvBinderHubVersion,
	EnvAKSNodeCount,
	EnvAKSNodeVMSize,
	EnvContactEmail,
	EnvDockerUsername,
	EnvDockerPassword,
	EnvDockerImagePrefix,
	EnvDockerOrganisation,
}

// Getenv is the lookup used by FromEnv. os.Getenv satisfies it; tests
// substitute a map lookup.
type Getenv func(key string) string

// FromEnv resolves container-mode settings from the environment. All
// required variables are checked eagerly; any missing one fails with an
// error wrapping model.ErrMissingRequiredConfig that names the variable.
func FromEnv(getenv Getenv) (*model.DeploymentSettings, error) {
	values := make(map[string]string, len(requiredEnv))
	var missing []string
	for _, key := range requiredEnv {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
			continue
		}
		values[key] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrMissingRequiredConfig, strings.Join(missing, ", "))
	}

	nodeCount, err := strconv.Atoi(values[EnvAKSNodeCount])
	if err != nil || nodeCount <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer, got %q",
			model.ErrMissingRequiredConfig, EnvAKSNodeCount, values[EnvAKSNodeCount])
	}

	s := &model.DeploymentSettings{
		Subscription:      values[EnvAzureSubscription],
		ResourceGroupName: values[EnvResourceGroupName],
		Location:          values[EnvResourceGroupLocation],
		NodeCount:         nodeCount,
		VMSize:            values[EnvAKSNodeVMSize],
		HubName:           values[EnvBinderHubName],
		ChartVersion:      values[EnvBinderHubVersion],
		ContactEmail:      values[EnvContactEmail],
		DockerID:          values[EnvDockerUsername],
		DockerPassword:    values[EnvDockerPassword],
		ImagePrefix:       values[EnvDockerImagePrefix],

		Credential: model.CredentialMode{
			Kind:     model.CredentialServicePrincipal,
			AppID:    values[EnvSPAppID],
			AppKey:   values[EnvSPAppKey],
			TenantID: values[EnvSPTenantID],
		},
	}
	// DOCKER_ORGANISATION accepts "null" as an explicit "no organisation"
	// marker to keep compose files simple.
	if org := values[EnvDockerOrganisation]; org != "null" {
		s.DockerOrganisation = org
	}
	return s, applyDerivedNames(s)
}
