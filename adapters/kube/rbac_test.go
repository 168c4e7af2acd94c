package kube

import (
	"context"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestEnsureHubRBAC(t *testing.T) {
	cs := fake.NewSimpleClientset()
	h := testHubClient(cs)
	ctx := context.Background()

	if err := h.EnsureHubRBAC(ctx, "hub23"); err != nil {
		t.Fatalf("EnsureHubRBAC: %v", err)
	}
	if _, err := cs.CoreV1().Namespaces().Get(ctx, "hub23", metav1.GetOptions{}); err != nil {
		t.Errorf("namespace not created: %v", err)
	}
	if _, err := cs.CoreV1().ServiceAccounts("hub23").Get(ctx, HubServiceAccountName, metav1.GetOptions{}); err != nil {
		t.Errorf("serviceaccount not created: %v", err)
	}
	crb, err := cs.RbacV1().ClusterRoleBindings().Get(ctx, HubServiceAccountName, metav1.GetOptions{})
	if err != nil {
		t.Fatalf("clusterrolebinding not created: %v", err)
	}
	if crb.RoleRef.Name != "cluster-admin" {
		t.Errorf("role ref = %q, want cluster-admin", crb.RoleRef.Name)
	}

	// Second call must be a no-op, not a conflict.
	if err := h.EnsureHubRBAC(ctx, "hub23"); err != nil {
		t.Errorf("EnsureHubRBAC re-run: %v", err)
	}
}

func TestEnsureHubRBACEmptyNamespace(t *testing.T) {
	h := testHubClient(fake.NewSimpleClientset())
	if err := h.EnsureHubRBAC(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty namespace")
	}
}
