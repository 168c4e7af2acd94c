package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/binderhub-ops/binderops/adapters/azure"
	"github.com/binderhub-ops/binderops/adapters/kube"
	"github.com/binderhub-ops/binderops/adapters/store/rdb"
	"github.com/binderhub-ops/binderops/config/deploycfg"
	"github.com/binderhub-ops/binderops/domain"
	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/terminal"
	"github.com/binderhub-ops/binderops/usecase/deploy"
)

// resolveSettings builds the deployment settings at the program boundary.
// Container mode reads the fixed environment surface; file mode reads the
// JSON document and prompts for missing registry credentials.
func resolveSettings(containerMode bool, configPath string) (*model.DeploymentSettings, error) {
	if containerMode {
		return deploycfg.FromEnv(os.Getenv)
	}
	s, err := deploycfg.FromFile(configPath, terminal.NewPrompter())
	if err != nil {
		return nil, err
	}
	// Service principal values may still arrive via the environment in
	// file mode; a partial set fails here rather than at the first
	// control plane call.
	mode, err := azure.ResolveLoginMode(
		os.Getenv(deploycfg.EnvSPAppID),
		os.Getenv(deploycfg.EnvSPAppKey),
		os.Getenv(deploycfg.EnvSPTenantID),
	)
	if err != nil {
		return nil, err
	}
	s.Credential = mode
	return s, nil
}

// buildUseCase wires the Azure driver, hub port factory and history
// store for one command invocation.
func buildUseCase(flags *pflag.FlagSet, settings *model.DeploymentSettings) (*deploy.UseCase, error) {
	driver, err := azure.NewDriver(settings)
	if err != nil {
		return nil, err
	}
	runs, err := buildRunRepository(flags)
	if err != nil {
		return nil, err
	}
	return &deploy.UseCase{
		ClusterPort:    driver,
		HubPortFactory: kube.NewHubPort,
		Runs:           runs,
	}, nil
}

// buildRunRepository opens the history store named by --history-db.
// "none" disables history.
func buildRunRepository(flags *pflag.FlagSet) (domain.RunRepository, error) {
	url, _ := flags.GetString("history-db")
	if url == "" || url == "none" {
		return nil, nil
	}
	db, err := rdb.OpenFromURL(url)
	if err != nil {
		return nil, err
	}
	if err := rdb.AutoMigrate(db); err != nil {
		return nil, err
	}
	return rdb.NewRunRepository(db), nil
}
