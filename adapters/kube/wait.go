package kube

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

// pendingAddress is the placeholder some tooling reports while the cloud
// provider has not yet assigned an address. Treated the same as empty.
const pendingAddress = "<pending>"

// WaitNodesReady polls until the number of nodes reporting a Ready
// condition equals nodeCount. Transient list errors keep the loop going;
// only the deadline terminates it with ErrClusterNotReady.
func (h *HubClient) WaitNodesReady(ctx context.Context, nodeCount int, timeout time.Duration) error {
	log := logging.FromContext(ctx)

	ticker := time.NewTicker(h.NodePollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w: %d nodes not ready after %s",
				model.ErrClusterNotReady, nodeCount, timeout)
		case <-ticker.C:
			nodes, err := h.Client.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
			if err != nil {
				log.Debug(ctx, "node list failed, retrying", "err", err.Error())
				continue
			}
			ready := 0
			for i := range nodes.Items {
				if nodeReady(&nodes.Items[i]) {
					ready++
				}
			}
			log.Info(ctx, "waiting for cluster nodes", "ready", ready, "want", nodeCount)
			if ready == nodeCount {
				return nil
			}
		}
	}
}

func nodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

// WaitServiceIP polls until the named service has an externally reachable
// address and returns it. Only the deadline terminates the loop with
// ErrServiceIPNotAssigned.
func (h *HubClient) WaitServiceIP(ctx context.Context, namespace, service string, timeout time.Duration) (string, error) {
	log := logging.FromContext(ctx)

	ticker := time.NewTicker(h.ServicePollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", fmt.Errorf("%w: %s/%s after %s",
				model.ErrServiceIPNotAssigned, namespace, service, timeout)
		case <-ticker.C:
			svc, err := h.Client.Clientset.CoreV1().Services(namespace).Get(ctx, service, metav1.GetOptions{})
			if err != nil {
				log.Debug(ctx, "service get failed, retrying", "err", err.Error())
				continue
			}
			if addr := externalAddress(svc); addr != "" {
				log.Info(ctx, "service address assigned", "service", service, "address", addr)
				return addr, nil
			}
			log.Info(ctx, "waiting for service address", "service", service)
		}
	}
}

func externalAddress(svc *corev1.Service) string {
	for _, ing := range svc.Status.LoadBalancer.Ingress {
		if ing.IP != "" && ing.IP != pendingAddress {
			return ing.IP
		}
		if ing.Hostname != "" {
			return ing.Hostname
		}
	}
	return ""
}
