package config

// BuildConfig holds the project-wide defaults from the [build] table.
// Every field is optional: nil means "no opinion", so a more specific layer
// can fall back to a less specific one.
type BuildConfig struct {
	Env EnvConfig `toml:"env,omitempty" yaml:"env,omitempty"`

	// Xargo builds the standard library with xargo.
	Xargo *bool `toml:"xargo,omitempty" yaml:"xargo,omitempty"`

	// BuildStd builds the standard library with -Zbuild-std.
	BuildStd *bool `toml:"build-std,omitempty" yaml:"build-std,omitempty"`

	// DefaultTarget is the triple used when none is given on the command line.
	DefaultTarget *string `toml:"default-target,omitempty" yaml:"default-target,omitempty"`

	// PreBuild lists shell commands baked into a derived image before building.
	PreBuild *[]string `toml:"pre-build,omitempty" yaml:"pre-build,omitempty"`

	// Dockerfile accepts either a bare path or a table (see DockerfileConfig).
	Dockerfile *DockerfileConfig `toml:"dockerfile,omitempty" yaml:"dockerfile,omitempty"`
}

// EnvConfig is the environment policy of a layer. A nil list inherits from
// the less specific layer; an empty list means "explicitly none".
type EnvConfig struct {
	// Volumes are host paths mounted into the build container.
	Volumes *[]string `toml:"volumes,omitempty" yaml:"volumes,omitempty"`

	// Passthrough are environment variable names forwarded into the container.
	Passthrough *[]string `toml:"passthrough,omitempty" yaml:"passthrough,omitempty"`
}

// merge overlays every non-nil field of other onto a copy of b.
func (b BuildConfig) merge(other BuildConfig) BuildConfig {
	out := b.clone()
	out.Env = b.Env.merge(other.Env)
	if other.Xargo != nil {
		out.Xargo = clonePtr(other.Xargo)
	}
	if other.BuildStd != nil {
		out.BuildStd = clonePtr(other.BuildStd)
	}
	if other.DefaultTarget != nil {
		out.DefaultTarget = clonePtr(other.DefaultTarget)
	}
	if other.PreBuild != nil {
		out.PreBuild = cloneList(other.PreBuild)
	}
	if other.Dockerfile != nil {
		out.Dockerfile = other.Dockerfile.clone()
	}
	return out
}

func (b BuildConfig) clone() BuildConfig {
	return BuildConfig{
		Env:           b.Env.clone(),
		Xargo:         clonePtr(b.Xargo),
		BuildStd:      clonePtr(b.BuildStd),
		DefaultTarget: clonePtr(b.DefaultTarget),
		PreBuild:      cloneList(b.PreBuild),
		Dockerfile:    b.Dockerfile.clone(),
	}
}

func (e EnvConfig) merge(other EnvConfig) EnvConfig {
	out := e.clone()
	if other.Volumes != nil {
		out.Volumes = cloneList(other.Volumes)
	}
	if other.Passthrough != nil {
		out.Passthrough = cloneList(other.Passthrough)
	}
	return out
}

func (e EnvConfig) clone() EnvConfig {
	return EnvConfig{
		Volumes:     cloneList(e.Volumes),
		Passthrough: cloneList(e.Passthrough),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneList(p *[]string) *[]string {
	if p == nil {
		return nil
	}
	v := append([]string{}, (*p)...)
	return &v
}

// listValue dereferences an optional list. The result is nil when the list
// is unset and non-nil (possibly empty) when it is set.
func listValue(p *[]string) []string {
	if p == nil {
		return nil
	}
	if *p == nil {
		return []string{}
	}
	return *p
}
