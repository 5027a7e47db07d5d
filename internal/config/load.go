package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for config files of unsupported formats.
var ErrUnknownFormat = errors.New("unknown config format")

// FileNames are names Discover looks for, in order.
var FileNames = []string{".refguard.yml", ".refguard.yaml", ".refguard.toml"}

// Load reads and parses a config file at the given path. Settings missing
// in the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses config data of the format given by a file extension.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		for _, key := range meta.Undecoded() {
			// Rule settings are decoded by RuleCfg itself.
			if len(key) > 1 && key[0] == "rules" {
				continue
			}
			return nil, fmt.Errorf("unknown key %s", key)
		}
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnknownFormat)
	}

	if cfg.Jobs < 0 {
		return nil, fmt.Errorf("negative jobs %d", cfg.Jobs)
	}

	return cfg, nil
}

// Discover walks up the directory tree from startDir looking for a config
// file. It stops at the repository root marked by .git or at the
// filesystem root. Returns "" if nothing was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
