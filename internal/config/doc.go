// Package config reads refguard settings from YAML or TOML files.
package config
