package naming

import (
	"strings"
	"testing"
)

func TestResourceGroupNameFiltersDisallowedChars(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"myhub", "myhub_RG"},
		{"my hub!", "myhub_RG"},
		{"hub@23", "hub23_RG"},
		{"a_b-c", "a_b-c_RG"},
		{"Üml@ut-hub", "mlut-hub_RG"},
	}
	for _, c := range cases {
		if got := ResourceGroupName(c.in); got != c.want {
			t.Errorf("ResourceGroupName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClusterNameFiltersUnderscores(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"myhub", "myhub-AKS"},
		{"my_hub", "myhub-AKS"},
		{"my hub!", "myhub-AKS"},
		{"a_b-c", "ab-c-AKS"},
	}
	for _, c := range cases {
		if got := ClusterName(c.in); got != c.want {
			t.Errorf("ClusterName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDerivedNameCharset(t *testing.T) {
	in := "hub with spaces & $ymbols_and-dashes!"
	rg := ResourceGroupName(in)
	for _, r := range strings.TrimSuffix(rg, "_RG") {
		ok := r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			t.Fatalf("ResourceGroupName(%q) contains disallowed rune %q", in, r)
		}
	}
	cl := ClusterName(in)
	for _, r := range strings.TrimSuffix(cl, "-AKS") {
		ok := r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			t.Fatalf("ClusterName(%q) contains disallowed rune %q", in, r)
		}
	}
}

func TestTruncationLimits(t *testing.T) {
	long := strings.Repeat("a", 200)
	rg := ResourceGroupName(long)
	if got := len(strings.TrimSuffix(rg, "_RG")); got != 87 {
		t.Errorf("resource group base length = %d, want 87", got)
	}
	if !strings.HasSuffix(rg, "_RG") {
		t.Errorf("resource group name missing suffix: %q", rg)
	}
	cl := ClusterName(long)
	if got := len(strings.TrimSuffix(cl, "-AKS")); got != 59 {
		t.Errorf("cluster name base length = %d, want 59", got)
	}
	if !strings.HasSuffix(cl, "-AKS") {
		t.Errorf("cluster name missing suffix: %q", cl)
	}
}

func TestDerivationIsDeterministic(t *testing.T) {
	for _, in := range []string{"myhub", "my hub!", strings.Repeat("xy-z", 40)} {
		if a, b := ResourceGroupName(in), ResourceGroupName(in); a != b {
			t.Errorf("ResourceGroupName not deterministic for %q: %q vs %q", in, a, b)
		}
		if a, b := ClusterName(in), ClusterName(in); a != b {
			t.Errorf("ClusterName not deterministic for %q: %q vs %q", in, a, b)
		}
	}
}

func TestEmptyFilteredNameYieldsEmpty(t *testing.T) {
	for _, in := range []string{"", "!!!", "   "} {
		if got := ResourceGroupName(in); got != "" {
			t.Errorf("ResourceGroupName(%q) = %q, want empty", in, got)
		}
		if got := ClusterName(in); got != "" {
			t.Errorf("ClusterName(%q) = %q, want empty", in, got)
		}
	}
}
