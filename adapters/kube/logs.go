package kube

import (
	"context"
	"fmt"
	"io"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PodLogs fetches and concatenates the logs of all pods matching the
// label selector, each section headed by the pod name.
func (h *HubClient) PodLogs(ctx context.Context, namespace, labelSelector string) (string, error) {
	cs := h.Client.Clientset
	pods, err := cs.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return "", fmt.Errorf("list pods %s in %s: %w", labelSelector, namespace, err)
	}
	if len(pods.Items) == 0 {
		return "", fmt.Errorf("no pods match %q in namespace %s", labelSelector, namespace)
	}

	var b strings.Builder
	for i := range pods.Items {
		pod := &pods.Items[i]
		fmt.Fprintf(&b, "==> %s <==\n", pod.Name)
		if err := h.appendPodLog(ctx, &b, pod); err != nil {
			fmt.Fprintf(&b, "(log unavailable: %v)\n", err)
		}
	}
	return b.String(), nil
}

func (h *HubClient) appendPodLog(ctx context.Context, w io.Writer, pod *corev1.Pod) error {
	req := h.Client.Clientset.CoreV1().Pods(pod.Namespace).GetLogs(pod.Name, &corev1.PodLogOptions{})
	rc, err := req.Stream(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(w, rc)
	return err
}
