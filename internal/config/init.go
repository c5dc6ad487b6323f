package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// configHeader is written above the generated defaults.
const configHeader = `# bundlegen configuration
#
# Precedence: flags > BUNDLEGEN_* environment variables > this file > defaults.
#
# Register bundles so crud and form generation can find them by name:
#
# modules:
#   AcmeBlogBundle:
#     namespace: Acme\BlogBundle
#     dir: src/Acme/BlogBundle

`

// Marshal renders cfg as the YAML written by `bundlegen config init`.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
