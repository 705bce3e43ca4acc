// Package config loads the logwatch configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Dir returns the logwatch config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/logwatch if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "logwatch"), nil
}

// Duration wraps time.Duration so YAML values like "500ms" or "2s" parse
// directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// Config mirrors the watch command's flags. Zero values mean "use the
// command's default"; explicit flags always override file values.
type Config struct {
	// Folder is the directory to watch.
	Folder string `yaml:"folder"`
	// File pins the watcher to a single filename, overriding Extensions.
	File string `yaml:"file"`
	// Extensions is the allow-list of file extensions to watch.
	Extensions []string `yaml:"extensions"`
	// TailLines is the number of historical lines delivered at startup.
	TailLines int `yaml:"tail_lines"`
	// ChunkSize is the read size hint for incremental reads, in bytes.
	ChunkSize int `yaml:"chunk_size"`
	// Interval is the sleep between polling ticks.
	Interval Duration `yaml:"interval"`
	// Database overrides the event journal path.
	Database string `yaml:"database"`
}

// Load reads the config file at path. An empty path means
// {Dir()}/config.yaml. A missing file yields an empty config without an
// error, so running without a config file just uses flag defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
