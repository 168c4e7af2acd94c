// Package hubvalues renders the two Helm values documents consumed by the
// BinderHub chart: the hub configuration and the registry secrets. Both
// are produced from embedded templates whose <name> placeholders are
// filled from the resolved deployment settings. The hub's external URL is
// not known until its proxy service obtains a load-balancer address, so
// the config document is rendered twice: once without the address for the
// initial install, and again with it for the follow-up upgrade.
package hubvalues

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/binderhub-ops/binderops/domain/model"
)

//go:embed config-template.yaml
var configTemplate []byte

//go:embed secret-template.yaml
var secretTemplate []byte

var placeholderRe = regexp.MustCompile(`<([A-Za-z0-9_-]+)>`)

// Renderer fills the embedded templates for one deployment run. The API
// and secret tokens are generated once at construction so re-rendering
// the same run is byte-stable.
type Renderer struct {
	settings    *model.DeploymentSettings
	apiToken    string
	secretToken string
}

// NewRenderer constructs a Renderer with freshly generated hub tokens.
func NewRenderer(settings *model.DeploymentSettings) (*Renderer, error) {
	apiToken, err := randomHexToken()
	if err != nil {
		return nil, err
	}
	secretToken, err := randomHexToken()
	if err != nil {
		return nil, err
	}
	return &Renderer{settings: settings, apiToken: apiToken, secretToken: secretToken}, nil
}

// Config renders the hub configuration document. discoveredIP may be
// empty for the first pass; when set, a hub.url entry pointing at the
// address is appended.
func (r *Renderer) Config(discoveredIP string) ([]byte, error) {
	values := map[string]string{
		"docker-id": r.settings.RegistryOwner(),
		"prefix":    r.settings.ImagePrefix,
	}
	return render(configTemplate, values, discoveredIP)
}

// Secret renders the registry/token secrets document.
func (r *Renderer) Secret() ([]byte, error) {
	values := map[string]string{
		"apiToken":    r.apiToken,
		"secretToken": r.secretToken,
		"username":    r.settings.DockerID,
		"password":    r.settings.DockerPassword,
	}
	return render(secretTemplate, values, "")
}

// render decodes the template into a node tree, substitutes placeholders
// in scalar values, optionally appends hub.url, and re-encodes. Working
// on the node tree keeps document order, so identical inputs produce
// byte-identical output.
func render(template []byte, values map[string]string, discoveredIP string) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(template, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse template: empty document")
	}
	if err := fill(&doc, values); err != nil {
		return nil, err
	}
	if discoveredIP != "" {
		appendHubURL(doc.Content[0], discoveredIP)
	}
	out, err := yaml.Marshal(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("encode rendered document: %w", err)
	}
	return out, nil
}

// fill substitutes <name> placeholders in every scalar node. A
// placeholder with no resolved value is an error naming the field, never
// a silently empty value.
func fill(n *yaml.Node, values map[string]string) error {
	if n.Kind == yaml.ScalarNode && placeholderRe.MatchString(n.Value) {
		var missing string
		n.Value = placeholderRe.ReplaceAllStringFunc(n.Value, func(tok string) string {
			name := tok[1 : len(tok)-1]
			v, ok := values[name]
			if !ok || v == "" {
				if missing == "" {
					missing = name
				}
				return tok
			}
			return v
		})
		if missing != "" {
			return fmt.Errorf("%w: %s", model.ErrTemplateFieldMissing, missing)
		}
		return nil
	}
	for _, c := range n.Content {
		if err := fill(c, values); err != nil {
			return err
		}
	}
	return nil
}

// appendHubURL adds "hub: {url: http://<ip>}" to the root mapping, the
// same shape the chart expects for a fixed proxy address.
func appendHubURL(root *yaml.Node, ip string) {
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "hub"}
	urlKey := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "url"}
	urlVal := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "http://" + ip}
	val := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{urlKey, urlVal}}
	root.Content = append(root.Content, key, val)
}

// randomHexToken returns 32 random bytes hex-encoded, matching the
// `openssl rand -hex 32` tokens the chart documentation calls for.
func randomHexToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
