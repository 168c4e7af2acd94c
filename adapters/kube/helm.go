package kube

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/cli/values"
	"helm.sh/helm/v3/pkg/getter"
	helmdriver "helm.sh/helm/v3/pkg/storage/driver"

	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

const helmTimeout = 10 * time.Minute

// InstallChart installs the release. When the release already exists the
// call falls through to an upgrade, keeping re-runs idempotent.
func (h *HubClient) InstallChart(ctx context.Context, rel model.ChartRelease) error {
	return h.runHelm(ctx, rel, false)
}

// UpgradeChart upgrades an existing release in place. This is the second
// pass issued after the proxy address is known.
func (h *HubClient) UpgradeChart(ctx context.Context, rel model.ChartRelease) error {
	return h.runHelm(ctx, rel, true)
}

func (h *HubClient) runHelm(ctx context.Context, rel model.ChartRelease, upgradeOnly bool) error {
	if len(h.Kubeconfig) == 0 {
		return fmt.Errorf("%w: kubeconfig is required for helm operations", model.ErrChartInstall)
	}
	log := logging.FromContext(ctx)

	kubeconfigPath, cleanup, err := writeTempKubeconfig(h.Kubeconfig)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrChartInstall, err)
	}
	defer cleanup()

	settings := cli.New()
	settings.KubeConfig = kubeconfigPath

	cfg := new(action.Configuration)
	if err := cfg.Init(settings.RESTClientGetter(), rel.Namespace, "secret", func(format string, v ...any) {
		log.Debug(ctx, fmt.Sprintf(format, v...))
	}); err != nil {
		return fmt.Errorf("%w: init helm configuration: %v", model.ErrChartInstall, err)
	}

	ch, err := h.loadChart(rel, settings)
	if err != nil {
		return err
	}
	vals, err := mergeReleaseValues(rel, settings)
	if err != nil {
		return err
	}

	up := action.NewUpgrade(cfg)
	up.Namespace = rel.Namespace
	up.Version = rel.Version
	up.Wait = true
	up.Timeout = helmTimeout
	// Without a secret document the deploy-time tokens must survive the
	// upgrade, so merge on top of the deployed values.
	up.ReuseValues = len(rel.SecretYAML) == 0

	if _, err := up.RunWithContext(ctx, rel.ReleaseName, ch, vals); err != nil {
		if upgradeOnly || !stdErrors.Is(err, helmdriver.ErrNoDeployedReleases) {
			return fmt.Errorf("%w: helm upgrade %s: %v", model.ErrChartInstall, rel.ReleaseName, err)
		}
		in := action.NewInstall(cfg)
		in.Namespace = rel.Namespace
		in.ReleaseName = rel.ReleaseName
		in.Version = rel.Version
		in.Wait = true
		in.Timeout = helmTimeout
		if _, ierr := in.RunWithContext(ctx, ch, vals); ierr != nil {
			return fmt.Errorf("%w: helm install %s: %v", model.ErrChartInstall, rel.ReleaseName, ierr)
		}
	}

	log.Info(ctx, "helm release applied",
		"release", rel.ReleaseName,
		"namespace", rel.Namespace,
		"chart", rel.ChartName,
		"version", rel.Version,
	)
	return nil
}

// loadChart locates the chart in the configured repository and loads it.
func (h *HubClient) loadChart(rel model.ChartRelease, settings *cli.EnvSettings) (*chart.Chart, error) {
	cpo := action.ChartPathOptions{RepoURL: rel.RepoURL, Version: rel.Version}
	chartPath, err := cpo.LocateChart(rel.ChartName, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: locate chart %s: %v", model.ErrChartInstall, rel.ChartName, err)
	}
	ch, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("%w: load chart %s: %v", model.ErrChartInstall, rel.ChartName, err)
	}
	return ch, nil
}

// mergeReleaseValues merges the rendered config and secret documents the
// way `helm install -f config.yaml -f secret.yaml` would.
func mergeReleaseValues(rel model.ChartRelease, settings *cli.EnvSettings) (map[string]any, error) {
	dir, err := os.MkdirTemp("", "binderops-values-")
	if err != nil {
		return nil, fmt.Errorf("%w: temp values dir: %v", model.ErrChartInstall, err)
	}
	defer os.RemoveAll(dir)

	var files []string
	for name, data := range map[string][]byte{
		"config.yaml": rel.ConfigYAML,
		"secret.yaml": rel.SecretYAML,
	} {
		if len(data) == 0 {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return nil, fmt.Errorf("%w: write %s: %v", model.ErrChartInstall, name, err)
		}
		files = append(files, path)
	}
	// Config before secret so secret values win on conflict, matching the
	// original install command's -f ordering.
	opts := values.Options{ValueFiles: orderValueFiles(files)}
	vals, err := opts.MergeValues(getter.All(settings))
	if err != nil {
		return nil, fmt.Errorf("%w: merge values: %v", model.ErrChartInstall, err)
	}
	return vals, nil
}

// orderValueFiles puts config.yaml ahead of secret.yaml regardless of map
// iteration order.
func orderValueFiles(files []string) []string {
	if len(files) == 2 && filepath.Base(files[0]) == "secret.yaml" {
		return []string{files[1], files[0]}
	}
	return files
}

// writeTempKubeconfig writes kubeconfig bytes to a temporary file and
// returns its path and a cleanup function.
func writeTempKubeconfig(kubeconfig []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "binderops-kubeconfig-*.yaml")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp kubeconfig: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(kubeconfig); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", func() {}, fmt.Errorf("write temp kubeconfig: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", func() {}, fmt.Errorf("close temp kubeconfig: %w", err)
	}
	return path, func() { _ = os.Remove(path) }, nil
}
