package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// HubServiceAccountName is the service account the chart's build pods run
// under; it gets cluster-admin through a binding the way the original
// deployment flow set up its in-cluster deployer identity.
const HubServiceAccountName = "binderhub-deployer"

// EnsureHubRBAC creates the hub namespace, service account, and cluster
// role binding. All three creates are idempotent.
func (h *HubClient) EnsureHubRBAC(ctx context.Context, namespace string) error {
	if namespace == "" {
		return fmt.Errorf("namespace is empty")
	}
	if err := h.ensureNamespace(ctx, namespace); err != nil {
		return err
	}
	if err := h.ensureServiceAccount(ctx, namespace, HubServiceAccountName); err != nil {
		return err
	}
	return h.ensureClusterRoleBinding(ctx, namespace, HubServiceAccountName)
}

func (h *HubClient) ensureNamespace(ctx context.Context, name string) error {
	cs := h.Client.Clientset
	_, err := cs.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return fmt.Errorf("get namespace %s: %w", name, err)
	}
	_, err = cs.CoreV1().Namespaces().Create(ctx, &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}, metav1.CreateOptions{})
	if err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("create namespace %s: %w", name, err)
	}
	return nil
}

func (h *HubClient) ensureServiceAccount(ctx context.Context, namespace, name string) error {
	cs := h.Client.Clientset
	_, err := cs.CoreV1().ServiceAccounts(namespace).Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return fmt.Errorf("get serviceaccount %s/%s: %w", namespace, name, err)
	}
	_, err = cs.CoreV1().ServiceAccounts(namespace).Create(ctx, &corev1.ServiceAccount{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}, metav1.CreateOptions{})
	if err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("create serviceaccount %s/%s: %w", namespace, name, err)
	}
	return nil
}

func (h *HubClient) ensureClusterRoleBinding(ctx context.Context, namespace, saName string) error {
	cs := h.Client.Clientset
	name := saName
	binding := &rbacv1.ClusterRoleBinding{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "ClusterRole",
			Name:     "cluster-admin",
		},
		Subjects: []rbacv1.Subject{
			{
				Kind:      rbacv1.ServiceAccountKind,
				Name:      saName,
				Namespace: namespace,
			},
		},
	}
	_, err := cs.RbacV1().ClusterRoleBindings().Create(ctx, binding, metav1.CreateOptions{})
	if err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("create clusterrolebinding %s: %w", name, err)
	}
	return nil
}
