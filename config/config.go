// Package config loads optional defaults for CLI flags from config.yml, so
// a permanently wired setup does not need the same flags on every start.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Arguments mirrors the run command's flags. Zero values mean "not set".
type Arguments struct {
	Device       string `yaml:"device"`
	DeviceByName string `yaml:"device-by-name"`
	Layout       string `yaml:"layout"`
	Port         string `yaml:"port"`
	Monitor      string `yaml:"monitor"`
	Debug        bool   `yaml:"debug"`
}

type Config struct {
	Arguments Arguments `yaml:"arguments"`
}

// Load reads the config file. A missing file is not an error: everything
// then comes from flags and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %v: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %v: %w", path, err)
	}
	return &cfg, nil
}
