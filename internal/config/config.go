package config

import (
	"fmt"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/sirkon/refguard/internal/canon"
	"github.com/sirkon/refguard/internal/diag"
	"github.com/sirkon/refguard/internal/guard"
	"github.com/sirkon/refguard/internal/rules"
)

// Config is the top-level configuration.
type Config struct {
	Rules  map[string]RuleCfg `yaml:"rules"  toml:"rules"`
	Paths  []PathCfg          `yaml:"paths"  toml:"paths"`
	Ignore []string           `yaml:"ignore" toml:"ignore"`
	Output OutputCfg          `yaml:"output" toml:"output"`

	// Jobs is a number of units analyzed in parallel, GOMAXPROCS for zero.
	Jobs int `yaml:"jobs" toml:"jobs"`
}

// PathCfg is an extra canonical table entry.
type PathCfg struct {
	Path string    `yaml:"path" toml:"path"`
	Tag  canon.Tag `yaml:"tag"  toml:"tag"`
}

// OutputCfg selects how diagnoses are written.
type OutputCfg struct {
	Format diag.Format `yaml:"format" toml:"format"`
	Color  ColorMode   `yaml:"color"  toml:"color"`
}

// RuleCfg is a union: a bool enabling or disabling the rule or a mapping
// with settings, the rule is enabled unless the mapping says otherwise.
type RuleCfg struct {
	Enabled bool

	// Severity overrides the rule severity when set.
	Severity *diag.Severity
}

type ruleCfgMapping struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *diag.Severity `yaml:"severity"`
}

// UnmarshalYAML handles the forms:
//   - false -> Enabled=false
//   - true  -> Enabled=true
//   - {severity: warning} -> Enabled=true, Severity=warning
func (r *RuleCfg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		*r = RuleCfg{Enabled: b}
		return nil
	}

	if value.Kind == yaml.MappingNode {
		var m ruleCfgMapping
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		r.apply(m)
		return nil
	}

	return fmt.Errorf("rule config must be a bool or a mapping, got %v", value.Kind)
}

// UnmarshalTOML is the same union for TOML.
func (r *RuleCfg) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case bool:
		*r = RuleCfg{Enabled: v}
		return nil

	case map[string]any:
		var m ruleCfgMapping
		for key, value := range v {
			switch key {
			case "enabled":
				b, ok := value.(bool)
				if !ok {
					return fmt.Errorf("invalid rule config: enabled must be a bool, got %T", value)
				}
				m.Enabled = &b
			case "severity":
				s, ok := value.(string)
				if !ok {
					return fmt.Errorf("invalid rule config: severity must be a string, got %T", value)
				}
				var sev diag.Severity
				if err := sev.UnmarshalText([]byte(s)); err != nil {
					return fmt.Errorf("invalid rule config: %w", err)
				}
				m.Severity = &sev
			default:
				return fmt.Errorf("invalid rule config: unknown key %q", key)
			}
		}
		r.apply(m)
		return nil

	default:
		return fmt.Errorf("rule config must be a bool or a table, got %T", data)
	}
}

func (r *RuleCfg) apply(m ruleCfgMapping) {
	r.Enabled = true
	if m.Enabled != nil {
		r.Enabled = *m.Enabled
	}
	r.Severity = m.Severity
}

// Default returns a config with all shipped rules enabled, the predefined
// canonical table and text output.
func Default() *Config {
	all := rules.All(nil)
	cfg := &Config{
		Rules: make(map[string]RuleCfg, len(all)),
		Output: OutputCfg{
			Format: diag.FormatText,
			Color:  ColorAuto,
		},
	}
	for _, r := range all {
		cfg.Rules[r.Name] = RuleCfg{Enabled: true}
	}

	return cfg
}

// Table builds the frozen canonical table: predefined entries and the
// configured ones.
func (c *Config) Table() (*canon.Table, error) {
	custom := make(map[string]canon.Tag, len(c.Paths))
	for _, p := range c.Paths {
		if _, ok := custom[p.Path]; ok {
			return nil, fmt.Errorf("path %s: %w", p.Path, canon.ErrDuplicatePath)
		}
		custom[p.Path] = p.Tag
	}

	t, err := canon.NewTable(custom)
	if err != nil {
		return nil, fmt.Errorf("build canonical table: %w", err)
	}
	t.Freeze()

	return t, nil
}

// Registry builds a registry of enabled rules bound to the table. Rules
// missing in the config are enabled, unknown rule names are errors.
func (c *Config) Registry(table *canon.Table) (*guard.Registry, error) {
	all := rules.All(table)

	known := make(map[string]struct{}, len(all))
	for _, r := range all {
		known[r.Name] = struct{}{}
	}
	for name := range c.Rules {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
	}

	reg := guard.NewRegistry()
	for _, r := range all {
		rc, ok := c.Rules[r.Name]
		if ok && !rc.Enabled {
			continue
		}
		if ok && rc.Severity != nil {
			r = r.WithSeverity(*rc.Severity)
		}

		if err := reg.Register(r); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Matcher returns a matcher of unit names to skip.
func (c *Config) Matcher() (*Matcher, error) {
	m := &Matcher{}
	for _, pattern := range c.Ignore {
		g, err := glob.Compile(pattern, ':', '.', '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}

	return m, nil
}

// Matcher matches unit names against ignore globs. A nil matcher matches
// nothing.
type Matcher struct {
	globs []glob.Glob
}

// Match reports whether the name is ignored.
func (m *Matcher) Match(name string) bool {
	if m == nil {
		return false
	}

	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
