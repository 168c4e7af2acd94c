package deploycfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretFile is the fallback secret file path. A leading "~/" is
// expanded against the user's home directory at load time.
const DefaultSecretFile = "~/.secret/BinderHub.json"

// Load reads a JSON config document from path. It performs no validation
// beyond decoding; Resolve handles validation.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var cfg Root
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadSecret reads the secret file. Empty path falls back to
// DefaultSecretFile. A missing file is not an error; the caller prompts
// for the password instead.
func LoadSecret(path string) (*Secret, error) {
	if path == "" {
		path = DefaultSecretFile
	}
	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read secret file %s: %w", expanded, err)
	}
	var sec Secret
	if err := json.Unmarshal(data, &sec); err != nil {
		return nil, fmt.Errorf("parse secret file %s: %w", expanded, err)
	}
	return &sec, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
