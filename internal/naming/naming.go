// Package naming derives Azure resource names from the operator-chosen
// hub name. Keeping the rules here allows future changes (length/charset)
// without touching call sites.
package naming

import "strings"

// Azure caps resource group names at 90 characters and managed cluster
// names at 63. The truncation limits leave room for the fixed suffixes.
const (
	resourceGroupSuffix = "_RG"
	clusterSuffix       = "-AKS"
	maxResourceGroupLen = 87
	maxClusterLen       = 59
)

// ResourceGroupName derives the resource group name for a hub.
// The hub name is filtered to [A-Za-z0-9_-], truncated to 87 characters,
// and suffixed with "_RG". Same hub name always yields the same result.
func ResourceGroupName(hubName string) string {
	base := filter(hubName, true)
	if base == "" {
		return ""
	}
	return truncate(base, maxResourceGroupLen) + resourceGroupSuffix
}

// ClusterName derives the managed cluster name for a hub.
// The hub name is filtered to [A-Za-z0-9-], truncated to 59 characters,
// and suffixed with "-AKS".
func ClusterName(hubName string) string {
	base := filter(hubName, false)
	if base == "" {
		return ""
	}
	return truncate(base, maxClusterLen) + clusterSuffix
}

// filter keeps alphanumerics and '-'; underscores are kept only when
// allowUnderscore is set (cluster names must be valid DNS-ish labels).
func filter(s string, allowUnderscore bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '_' && allowUnderscore:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
