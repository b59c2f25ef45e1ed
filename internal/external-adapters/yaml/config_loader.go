// Package yaml provides YAML-based configuration loading.
package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/distcheck/internal/domain/entities"
)

// Defaults applied when checker.yaml leaves a setting out.
var (
	defaultStrongChecksums = []string{"sha256", "sha512"}
	defaultWeakChecksums   = []string{"md5", "sha1"}
)

const defaultIntervalSeconds = 1800

// ConfigLoader parses checker.yaml into the domain configuration.
type ConfigLoader struct{}

// NewConfigLoader creates a new config loader
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// Load reads and validates a configuration file. Missing required
// settings are configuration errors; optional settings get defaults.
func (l *ConfigLoader) Load(path string) (*entities.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: config path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", entities.ErrConfiguration, path, err)
	}

	var cfg entities.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", entities.ErrConfiguration, path, err)
	}

	if cfg.DistDir == "" {
		return nil, fmt.Errorf("%w: dist_dir is required", entities.ErrConfiguration)
	}
	if cfg.KeychainDir == "" {
		return nil, fmt.Errorf("%w: please specify a keychain_dir for the trust stores", entities.ErrConfiguration)
	}

	if len(cfg.StrongChecksums) == 0 {
		cfg.StrongChecksums = defaultStrongChecksums
	}
	if len(cfg.WeakChecksums) == 0 {
		cfg.WeakChecksums = defaultWeakChecksums
	}
	if cfg.IntervalSeconds <= 0 {
		cfg.IntervalSeconds = defaultIntervalSeconds
	}

	return &cfg, nil
}
