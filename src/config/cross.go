package config

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// CrossToml is the resolved content of a Cross.toml file or of the
// package.metadata.cross table of a manifest.
type CrossToml struct {
	Build BuildConfig `toml:"build,omitempty" yaml:"build,omitempty"`

	// Targets is keyed by target triple. A missing triple is the normal case
	// and every accessor then falls back to Build.
	Targets map[string]TargetConfig `toml:"target,omitempty" yaml:"target,omitempty"`
}

// rawCrossToml mirrors CrossToml for decoding. The dockerfile fields stay
// untyped so a bare string and a table can both be accepted.
type rawCrossToml struct {
	Build  rawBuildConfig             `toml:"build"`
	Target map[string]rawTargetConfig `toml:"target"`
}

type rawBuildConfig struct {
	Env           EnvConfig `toml:"env"`
	Xargo         *bool     `toml:"xargo"`
	BuildStd      *bool     `toml:"build-std"`
	DefaultTarget *string   `toml:"default-target"`
	PreBuild      *[]string `toml:"pre-build"`
	Dockerfile    any       `toml:"dockerfile"`
}

type rawTargetConfig struct {
	Env        EnvConfig `toml:"env"`
	Xargo      *bool     `toml:"xargo"`
	BuildStd   *bool     `toml:"build-std"`
	Image      *string   `toml:"image"`
	Dockerfile any       `toml:"dockerfile"`
	PreBuild   *[]string `toml:"pre-build"`
	Runner     *string   `toml:"runner"`
}

// Parse decodes Cross.toml content.
//
// Keys that do not map to a known field never fail the parse; their dotted
// paths are returned sorted in unused. A known field with the wrong type, or
// invalid TOML, is an error.
func Parse(data []byte) (cfg *CrossToml, unused []string, err error) {
	var raw rawCrossToml
	unused, err = decodeStrict(data, &raw)
	if err != nil {
		return nil, nil, err
	}

	cfg = &CrossToml{}

	dockerfile, extra, err := decodeDockerfile(raw.Build.Dockerfile, "build.dockerfile")
	if err != nil {
		return nil, nil, err
	}
	unused = append(unused, extra...)
	cfg.Build = BuildConfig{
		Env:           raw.Build.Env,
		Xargo:         raw.Build.Xargo,
		BuildStd:      raw.Build.BuildStd,
		DefaultTarget: raw.Build.DefaultTarget,
		PreBuild:      raw.Build.PreBuild,
		Dockerfile:    dockerfile,
	}

	if len(raw.Target) > 0 {
		cfg.Targets = make(map[string]TargetConfig, len(raw.Target))
	}
	for triple, rt := range raw.Target {
		dockerfile, extra, err := decodeDockerfile(rt.Dockerfile, "target."+triple+".dockerfile")
		if err != nil {
			return nil, nil, err
		}
		unused = append(unused, extra...)
		cfg.Targets[triple] = TargetConfig{
			Env:        rt.Env,
			Xargo:      rt.Xargo,
			BuildStd:   rt.BuildStd,
			Image:      rt.Image,
			Dockerfile: dockerfile,
			PreBuild:   rt.PreBuild,
			Runner:     rt.Runner,
		}
	}

	sort.Strings(unused)
	return cfg, unused, nil
}

// ParseManifest looks for the package.metadata.cross table in a Cargo.toml
// document and parses it like Parse. A manifest without that table yields a
// nil config and a nil error.
func ParseManifest(data []byte) (*CrossToml, []string, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}

	var node any = doc
	for _, key := range []string{"package", "metadata", "cross"} {
		table, ok := node.(map[string]any)
		if !ok {
			return nil, nil, nil
		}
		node, ok = table[key]
		if !ok {
			return nil, nil, nil
		}
	}

	table, ok := node.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("package.metadata.cross: expected table, got %T", node)
	}
	sub, err := toml.Marshal(table)
	if err != nil {
		return nil, nil, fmt.Errorf("package.metadata.cross: %w", err)
	}
	return Parse(sub)
}

// Merge combines c with other, other taking precedence, and returns a new
// config. Neither input is modified.
//
// Targets are replaced whole: a triple present in both keeps other's entry
// untouched. Build fields are overlaid one by one: a field of other.Build
// wins only when it is set.
func (c *CrossToml) Merge(other *CrossToml) *CrossToml {
	if c == nil {
		c = &CrossToml{}
	}
	if other == nil {
		other = &CrossToml{}
	}

	out := &CrossToml{Build: c.Build.merge(other.Build)}
	if len(c.Targets)+len(other.Targets) > 0 {
		out.Targets = make(map[string]TargetConfig, len(c.Targets)+len(other.Targets))
	}
	for triple, tc := range c.Targets {
		out.Targets[triple] = tc.clone()
	}
	for triple, tc := range other.Targets {
		out.Targets[triple] = tc.clone()
	}
	return out
}

// Marshal renders the config as TOML.
func (c *CrossToml) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// decodeStrict decodes data into v and returns the dotted paths of keys v
// has no field for.
func decodeStrict(data []byte, v any) ([]string, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	var missing *toml.StrictMissingError
	if errors.As(err, &missing) {
		keys := make([]string, 0, len(missing.Errors))
		for i := range missing.Errors {
			keys = append(keys, strings.Join(missing.Errors[i].Key(), "."))
		}
		return keys, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}
