package azure

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/binderhub-ops/binderops/domain/model"
)

// ResolveLoginMode selects the Azure login mode from the three
// service-principal values. All present selects service-principal, all
// absent selects interactive. A partial set is rejected outright rather
// than guessed at: silently falling back to interactive would mask a
// misconfigured automation environment.
func ResolveLoginMode(appID, appKey, tenantID string) (model.CredentialMode, error) {
	appID = strings.TrimSpace(appID)
	appKey = strings.TrimSpace(appKey)
	tenantID = strings.TrimSpace(tenantID)

	set := 0
	var missing []string
	for _, v := range []struct{ name, value string }{
		{"app id", appID},
		{"app key", appKey},
		{"tenant id", tenantID},
	} {
		if v.value != "" {
			set++
		} else {
			missing = append(missing, v.name)
		}
	}

	switch set {
	case 3:
		return model.CredentialMode{
			Kind:     model.CredentialServicePrincipal,
			AppID:    appID,
			AppKey:   appKey,
			TenantID: tenantID,
		}, nil
	case 0:
		return model.CredentialMode{Kind: model.CredentialInteractive}, nil
	default:
		return model.CredentialMode{}, fmt.Errorf(
			"%w: incomplete service principal, missing %s",
			model.ErrLoginFailed, strings.Join(missing, ", "))
	}
}

// NewTokenCredential builds an SDK credential for the resolved mode.
// Interactive mode delegates to the Azure CLI's cached login, the Go
// equivalent of the script flow that shelled out to `az login`.
func NewTokenCredential(mode model.CredentialMode) (azcore.TokenCredential, error) {
	switch mode.Kind {
	case model.CredentialServicePrincipal:
		cred, err := azidentity.NewClientSecretCredential(mode.TenantID, mode.AppID, mode.AppKey, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrLoginFailed, err)
		}
		return cred, nil
	case model.CredentialInteractive:
		cred, err := azidentity.NewAzureCLICredential(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrLoginFailed, err)
		}
		return cred, nil
	default:
		return nil, fmt.Errorf("%w: unknown credential mode %q", model.ErrLoginFailed, mode.Kind)
	}
}
