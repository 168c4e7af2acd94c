// Package deploycfg defines the configuration schema for a BinderHub
// deployment and resolves it into a validated settings record. Two input
// modes exist: a JSON config file (interactive use) and a fixed set of
// environment variables (container use). The modes are never mixed.
package deploycfg

// Root is the root structure of the JSON configuration document.
type Root struct {
	Azure      Azure     `json:"azure"`
	BinderHub  BinderHub `json:"binderhub"`
	Docker     Docker    `json:"docker"`
	SecretFile string    `json:"secretFile,omitempty"`
}

// Azure holds control-plane settings.
type Azure struct {
	Subscription string `json:"subscription"`
	ResGrpName   string `json:"res_grp_name"`
	Location     string `json:"location"`
	ClusterName  string `json:"cluster_name"`
	NodeCount    int    `json:"node_count"`
	VMSize       string `json:"vm_size"`
}

// BinderHub identifies the hub and the chart version to install.
type BinderHub struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// Docker holds container registry settings. The password never lives in
// the config document; it comes from the secret file or a prompt.
type Docker struct {
	ID          string `json:"id"`
	Org         string `json:"org,omitempty"`
	ImagePrefix string `json:"image_prefix"`
}

// Secret is the schema of the secret file (default ~/.secret/BinderHub.json).
type Secret struct {
	Password string `json:"password"`
}
