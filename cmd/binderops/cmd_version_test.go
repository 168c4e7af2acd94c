package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestCmdVersion(t *testing.T) {
	root := newRootCmd()
	root.SetContext(context.Background())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "binderops version ") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestCmdLogsRejectsUnknownComponent(t *testing.T) {
	root := newRootCmd()
	root.SetContext(context.Background())
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"logs", "--component", "proxy", "--container"})
	t.Setenv("SP_APP_ID", "app")
	t.Setenv("SP_APP_KEY", "key")
	t.Setenv("SP_TENANT_ID", "tenant")
	t.Setenv("RESOURCE_GROUP_NAME", "hub_RG")
	t.Setenv("RESOURCE_GROUP_LOCATION", "westeurope")
	t.Setenv("AZURE_SUBSCRIPTION", "sub")
	t.Setenv("BINDERHUB_NAME", "hub")
	t.Setenv("BINDERHUB_VERSION", "0.2.0")
	t.Setenv("AKS_NODE_COUNT", "1")
	t.Setenv("AKS_NODE_VM_SIZE", "Standard_D2s_v3")
	t.Setenv("CONTACT_EMAIL", "ops@example.org")
	t.Setenv("DOCKER_USERNAME", "alice")
	t.Setenv("DOCKER_PASSWORD", "hunter2")
	t.Setenv("DOCKER_IMAGE_PREFIX", "binder-dev")
	t.Setenv("DOCKER_ORGANISATION", "null")
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "unsupported component") {
		t.Fatalf("expected unsupported component error, got %v", err)
	}
}
