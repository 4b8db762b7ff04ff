package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed account_defaults.yaml
var embeddedAccountDefaults []byte

// LoadAccountDefaults reads setting key to account code fallbacks from path, or from the
// built-in file when path is empty.
func LoadAccountDefaults(path string) (map[string]string, error) {
	data := embeddedAccountDefaults
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read account defaults %s: %w", path, err)
		}
	}
	return ParseAccountDefaults(data)
}

// ParseAccountDefaults parses a flat YAML mapping. Values are trimmed and empty values dropped.
func ParseAccountDefaults(data []byte) (map[string]string, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse account defaults: %w", err)
	}
	defaults := make(map[string]string, len(raw))
	for key, code := range raw {
		key, code = strings.TrimSpace(key), strings.TrimSpace(code)
		if key == "" || code == "" {
			continue
		}
		defaults[key] = code
	}
	return defaults, nil
}
