package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Override adjusts the configuration after the shared flags are applied.
// Commands use it for the flags only they register.
type Override func(*Config)

// Load resolves the effective configuration in layers: defaults, then the
// config file, then shared flags, then the command's overrides. The result
// must pass Validate. With -write-config it is also saved to that path.
func Load(overrides ...Override) (*Config, error) {
	cfg := Default()

	if path := configFile(); path != "" {
		if err := mergeFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyFlags(cfg)
	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if out := WriteConfigPath(); out != "" {
		if err := cfg.SaveTo(out); err != nil {
			return nil, fmt.Errorf("write config %s: %w", out, err)
		}
	}
	return cfg, nil
}

// configFile returns the -config path, or else the first existing file
// among searchPaths. An explicit path is returned even if it is missing so
// the caller reports it.
func configFile() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	for _, p := range searchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// searchPaths lists where a config file is looked for: the working
// directory, then the user config directory.
func searchPaths() []string {
	paths := []string{"config.yaml"}
	if dir := ConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	return paths
}

// ConfigDir is learngl under the user's config directory, or empty when
// the platform has none.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "learngl")
}

// mergeFile decodes path over the values already in cfg. Unknown keys are
// rejected so a misspelt setting does not silently fall back to a default.
func mergeFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
