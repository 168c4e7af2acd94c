package hubvalues

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/binderhub-ops/binderops/domain/model"
)

func testSettings() *model.DeploymentSettings {
	return &model.DeploymentSettings{
		HubName:        "hub23",
		DockerID:       "binderops",
		DockerPassword: "hunter2",
		ImagePrefix:    "binder-dev",
	}
}

func TestConfigFirstPass(t *testing.T) {
	r, err := NewRenderer(testSettings())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out, err := r.Config("")
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("rendered config is not valid YAML: %v", err)
	}
	if _, ok := doc["hub"]; ok {
		t.Errorf("first pass must not contain hub block:\n%s", out)
	}
	if !strings.Contains(string(out), "image_prefix: binderops/binder-dev-") {
		t.Errorf("image_prefix not filled:\n%s", out)
	}
}

func TestConfigUsesOrganisationWhenSet(t *testing.T) {
	s := testSettings()
	s.DockerOrganisation = "turing"
	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out, err := r.Config("")
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if !strings.Contains(string(out), "image_prefix: turing/binder-dev-") {
		t.Errorf("organisation not preferred over docker id:\n%s", out)
	}
}

func TestConfigSecondPassAppendsHubURL(t *testing.T) {
	r, err := NewRenderer(testSettings())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out, err := r.Config("20.1.2.3")
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	var doc struct {
		Hub struct {
			URL string `yaml:"url"`
		} `yaml:"hub"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("rendered config is not valid YAML: %v", err)
	}
	if doc.Hub.URL != "http://20.1.2.3" {
		t.Errorf("hub.url = %q, want http://20.1.2.3", doc.Hub.URL)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	r, err := NewRenderer(testSettings())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	for _, ip := range []string{"", "20.1.2.3"} {
		a, err := r.Config(ip)
		if err != nil {
			t.Fatalf("Config(%q): %v", ip, err)
		}
		b, err := r.Config(ip)
		if err != nil {
			t.Fatalf("Config(%q): %v", ip, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("Config(%q) not byte-identical across renders", ip)
		}
	}
	a, err := r.Secret()
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	b, err := r.Secret()
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("Secret not byte-identical across renders")
	}
}

func TestSecretFillsTokensAndRegistry(t *testing.T) {
	r, err := NewRenderer(testSettings())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	out, err := r.Secret()
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	var doc struct {
		JupyterHub struct {
			Hub struct {
				Services struct {
					Binder struct {
						APIToken string `yaml:"apiToken"`
					} `yaml:"binder"`
				} `yaml:"services"`
			} `yaml:"hub"`
			Proxy struct {
				SecretToken string `yaml:"secretToken"`
			} `yaml:"proxy"`
		} `yaml:"jupyterhub"`
		Registry struct {
			Username string `yaml:"username"`
			Password string `yaml:"password"`
		} `yaml:"registry"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("rendered secret is not valid YAML: %v", err)
	}
	if len(doc.JupyterHub.Hub.Services.Binder.APIToken) != 64 {
		t.Errorf("apiToken length = %d, want 64 hex chars", len(doc.JupyterHub.Hub.Services.Binder.APIToken))
	}
	if len(doc.JupyterHub.Proxy.SecretToken) != 64 {
		t.Errorf("secretToken length = %d, want 64 hex chars", len(doc.JupyterHub.Proxy.SecretToken))
	}
	if doc.JupyterHub.Hub.Services.Binder.APIToken == doc.JupyterHub.Proxy.SecretToken {
		t.Errorf("api and secret tokens must differ")
	}
	if doc.Registry.Username != "binderops" || doc.Registry.Password != "hunter2" {
		t.Errorf("registry credentials not filled: %+v", doc.Registry)
	}
}

func TestMissingFieldFailsLoudly(t *testing.T) {
	s := testSettings()
	s.ImagePrefix = ""
	r, err := NewRenderer(s)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	_, err = r.Config("")
	if !errors.Is(err, model.ErrTemplateFieldMissing) {
		t.Fatalf("expected ErrTemplateFieldMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "prefix") {
		t.Errorf("error %q does not name the missing field", err)
	}
}
