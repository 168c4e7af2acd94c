package model

// DeploymentSettings is the normalized configuration record for one
// BinderHub deployment run. It is constructed and validated once at the
// program boundary; nothing below the CLI layer reads the process
// environment.
type DeploymentSettings struct {
	// Azure control plane
	Subscription      string
	ResourceGroupName string
	Location          string
	ClusterName       string
	NodeCount         int
	VMSize            string

	// Hub identity and chart
	HubName      string
	ChartVersion string
	ContactEmail string

	// Container registry (DockerHub)
	DockerID           string
	DockerOrganisation string
	DockerPassword     string
	ImagePrefix        string

	// Path to the secret file holding the registry password in
	// interactive mode. Empty when the password came from the
	// environment or a prompt.
	SecretFile string

	Credential CredentialMode
}

// RegistryOwner returns the DockerHub namespace images are pushed under:
// the organisation when set, the user ID otherwise.
func (s *DeploymentSettings) RegistryOwner() string {
	if s.DockerOrganisation != "" {
		return s.DockerOrganisation
	}
	return s.DockerID
}

// CredentialKind distinguishes the two supported Azure login modes.
type CredentialKind string

const (
	CredentialInteractive      CredentialKind = "interactive"
	CredentialServicePrincipal CredentialKind = "service-principal"
)

// CredentialMode is the resolved login mode. AppID/AppKey/TenantID are
// populated only for the service-principal variant.
type CredentialMode struct {
	Kind     CredentialKind
	AppID    string
	AppKey   string
	TenantID string
}
