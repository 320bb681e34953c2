package config

// TargetConfig holds the overrides from a [target.<triple>] table.
//
// Target entries are meant to be fully specified: when two layers both define
// the same triple, the more specific entry replaces the other one whole.
type TargetConfig struct {
	Env EnvConfig `toml:"env,omitempty" yaml:"env,omitempty"`

	Xargo    *bool `toml:"xargo,omitempty" yaml:"xargo,omitempty"`
	BuildStd *bool `toml:"build-std,omitempty" yaml:"build-std,omitempty"`

	// Image replaces the default toolchain image for this target.
	Image *string `toml:"image,omitempty" yaml:"image,omitempty"`

	Dockerfile *DockerfileConfig `toml:"dockerfile,omitempty" yaml:"dockerfile,omitempty"`
	PreBuild   *[]string         `toml:"pre-build,omitempty" yaml:"pre-build,omitempty"`

	// Runner selects how compiled test binaries are executed (qemu-user, native, ...).
	Runner *string `toml:"runner,omitempty" yaml:"runner,omitempty"`
}

func (t TargetConfig) clone() TargetConfig {
	return TargetConfig{
		Env:        t.Env.clone(),
		Xargo:      clonePtr(t.Xargo),
		BuildStd:   clonePtr(t.BuildStd),
		Image:      clonePtr(t.Image),
		Dockerfile: t.Dockerfile.clone(),
		PreBuild:   cloneList(t.PreBuild),
		Runner:     clonePtr(t.Runner),
	}
}
