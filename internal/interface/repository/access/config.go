package access

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type accessConfig struct {
	BlockedDomains []string `yaml:"blocked_domains"`
}

func loadConfigFile(path string) (*accessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return createDefaultConfig(path)
		}
		return nil, err
	}

	var config accessConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(path string) (*accessConfig, error) {
	config := &accessConfig{
		BlockedDomains: []string{},
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}

	return config, nil
}

// prepare は設定データを正規化する
func (c *accessConfig) prepare() map[string]bool {
	domains := make(map[string]bool)

	for _, domain := range c.BlockedDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		domains[domain] = true
	}

	return domains
}
