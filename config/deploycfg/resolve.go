package deploycfg

import (
	"fmt"

	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/naming"
	"github.com/binderhub-ops/binderops/internal/terminal"
)

// FromFile resolves interactive-mode settings from a JSON config document.
// Registry credentials not present in the document or the secret file are
// collected from the operator; the password prompt does not echo.
func FromFile(path string, prompter *terminal.Prompter) (*model.DeploymentSettings, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	s := &model.DeploymentSettings{
		Subscription:       cfg.Azure.Subscription,
		ResourceGroupName:  cfg.Azure.ResGrpName,
		Location:           cfg.Azure.Location,
		ClusterName:        cfg.Azure.ClusterName,
		NodeCount:          cfg.Azure.NodeCount,
		VMSize:             cfg.Azure.VMSize,
		HubName:            cfg.BinderHub.Name,
		ChartVersion:       cfg.BinderHub.Version,
		ContactEmail:       cfg.BinderHub.ContactEmail,
		DockerID:           cfg.Docker.ID,
		DockerOrganisation: cfg.Docker.Org,
		ImagePrefix:        cfg.Docker.ImagePrefix,
		SecretFile:         cfg.SecretFile,
		Credential:         model.CredentialMode{Kind: model.CredentialInteractive},
	}

	if err := validateFileSettings(s); err != nil {
		return nil, err
	}

	if s.DockerID == "" {
		id, err := prompter.Line("DockerHub ID")
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, fmt.Errorf("%w: docker.id", model.ErrMissingRequiredConfig)
		}
		s.DockerID = id
	}

	sec, err := LoadSecret(cfg.SecretFile)
	if err != nil {
		return nil, err
	}
	if sec != nil && sec.Password != "" {
		s.DockerPassword = sec.Password
	} else {
		pw, err := prompter.Password("DockerHub password")
		if err != nil {
			return nil, err
		}
		if pw == "" {
			return nil, fmt.Errorf("%w: docker password", model.ErrMissingRequiredConfig)
		}
		s.DockerPassword = pw
	}

	return s, applyDerivedNames(s)
}

// validateFileSettings checks the fields that must come from the document.
func validateFileSettings(s *model.DeploymentSettings) error {
	type field struct {
		key   string
		value string
	}
	fields := []field{
		{"azure.subscription", s.Subscription},
		{"azure.location", s.Location},
		{"azure.vm_size", s.VMSize},
		{"binderhub.name", s.HubName},
		{"binderhub.version", s.ChartVersion},
		{"docker.image_prefix", s.ImagePrefix},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s", model.ErrMissingRequiredConfig, f.key)
		}
	}
	if s.NodeCount <= 0 {
		return fmt.Errorf("%w: azure.node_count must be a positive integer, got %d",
			model.ErrMissingRequiredConfig, s.NodeCount)
	}
	return nil
}

// applyDerivedNames fills resource group and cluster names from the hub
// name when the input left them empty. A hub name that filters down to
// nothing is a validation failure here, before any cloud call.
func applyDerivedNames(s *model.DeploymentSettings) error {
	if s.ResourceGroupName == "" {
		s.ResourceGroupName = naming.ResourceGroupName(s.HubName)
	}
	if s.ClusterName == "" {
		s.ClusterName = naming.ClusterName(s.HubName)
	}
	if s.ResourceGroupName == "" || s.ClusterName == "" {
		return fmt.Errorf("%w: hub name %q contains no usable characters",
			model.ErrMissingRequiredConfig, s.HubName)
	}
	return nil
}
