package deploycfg

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/terminal"
)

func fullEnv() map[string]string {
	return map[string]string{
		"SP_APP_ID":               "app-id",
		"SP_APP_KEY":              "app-key",
		"SP_TENANT_ID":            "tenant",
		"RESOURCE_GROUP_NAME":     "hub23_RG",
		"RESOURCE_GROUP_LOCATION": "westeurope",
		"AZURE_SUBSCRIPTION":      "sub-0000",
		"BINDERHUB_NAME":          "hub23",
		"BINDERHUB_VERSION":       "0.2.0-3b53fce",
		"AKS_NODE_COUNT":          "3",
		"AKS_NODE_VM_SIZE":        "Standard_D2s_v3",
		"CONTACT_EMAIL":           "ops@example.org",
		"DOCKER_USERNAME":         "binderops",
		"DOCKER_PASSWORD":         "hunter2",
		"DOCKER_IMAGE_PREFIX":     "binder-dev",
		"DOCKER_ORGANISATION":     "null",
	}
}

func TestFromEnvComplete(t *testing.T) {
	env := fullEnv()
	s, err := FromEnv(func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if s.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", s.NodeCount)
	}
	if s.Credential.Kind != model.CredentialServicePrincipal {
		t.Errorf("Credential.Kind = %q, want service-principal", s.Credential.Kind)
	}
	if s.DockerOrganisation != "" {
		t.Errorf("DOCKER_ORGANISATION=null should clear organisation, got %q", s.DockerOrganisation)
	}
	if s.RegistryOwner() != "binderops" {
		t.Errorf("RegistryOwner = %q, want docker id", s.RegistryOwner())
	}
}

func TestFromEnvMissingVariableNamesIt(t *testing.T) {
	for _, key := range []string{"SP_APP_KEY", "BINDERHUB_NAME", "DOCKER_PASSWORD", "AKS_NODE_COUNT"} {
		t.Run(key, func(t *testing.T) {
			env := fullEnv()
			delete(env, key)
			_, err := FromEnv(func(k string) string { return env[k] })
			if !errors.Is(err, model.ErrMissingRequiredConfig) {
				t.Fatalf("expected ErrMissingRequiredConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error %q does not name missing variable %s", err, key)
			}
		})
	}
}

func TestFromEnvRejectsBadNodeCount(t *testing.T) {
	for _, bad := range []string{"0", "-2", "three"} {
		env := fullEnv()
		env["AKS_NODE_COUNT"] = bad
		_, err := FromEnv(func(k string) string { return env[k] })
		if !errors.Is(err, model.ErrMissingRequiredConfig) {
			t.Errorf("AKS_NODE_COUNT=%q: expected ErrMissingRequiredConfig, got %v", bad, err)
		}
	}
}

func TestFromEnvKeepsOrganisation(t *testing.T) {
	env := fullEnv()
	env["DOCKER_ORGANISATION"] = "turing"
	s, err := FromEnv(func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if s.RegistryOwner() != "turing" {
		t.Errorf("RegistryOwner = %q, want organisation", s.RegistryOwner())
	}
}

const sampleConfig = `{
  "azure": {
    "subscription": "sub-0000",
    "location": "westeurope",
    "node_count": 1,
    "vm_size": "Standard_D2s_v3"
  },
  "binderhub": {
    "name": "Binder Hub 23!",
    "version": "0.2.0-3b53fce"
  },
  "docker": {
    "id": "binderops",
    "image_prefix": "binder-dev"
  }
}`

func TestFromFileDerivesNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	secretPath := filepath.Join(dir, "secret.json")
	if err := os.WriteFile(secretPath, []byte(`{"password":"hunter2"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := strings.Replace(sampleConfig, `"docker": {`,
		`"secretFile": "`+secretPath+`",
  "docker": {`, 1)
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &terminal.Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	s, err := FromFile(path, p)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if s.ResourceGroupName != "BinderHub23_RG" {
		t.Errorf("ResourceGroupName = %q", s.ResourceGroupName)
	}
	if s.ClusterName != "BinderHub23-AKS" {
		t.Errorf("ClusterName = %q", s.ClusterName)
	}
	if s.DockerPassword != "hunter2" {
		t.Errorf("password not read from secret file")
	}
	if s.Credential.Kind != model.CredentialInteractive {
		t.Errorf("Credential.Kind = %q, want interactive", s.Credential.Kind)
	}
}

func TestFromFilePromptsForPassword(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := strings.Replace(sampleConfig, `"docker": {`,
		`"secretFile": "`+filepath.Join(dir, "absent.json")+`",
  "docker": {`, 1)
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	p := &terminal.Prompter{In: strings.NewReader("prompted-secret\n"), Out: &out}
	s, err := FromFile(path, p)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if s.DockerPassword != "prompted-secret" {
		t.Errorf("DockerPassword = %q, want prompted value", s.DockerPassword)
	}
	if !strings.Contains(out.String(), "password") {
		t.Errorf("prompt text missing: %q", out.String())
	}
}

func TestFromFileMissingField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := strings.Replace(sampleConfig, `"version": "0.2.0-3b53fce"`, `"version": ""`, 1)
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	p := &terminal.Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	_, err := FromFile(path, p)
	if !errors.Is(err, model.ErrMissingRequiredConfig) {
		t.Fatalf("expected ErrMissingRequiredConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "binderhub.version") {
		t.Errorf("error %q does not name binderhub.version", err)
	}
}
