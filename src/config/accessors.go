package config

import (
	"maps"

	"github.com/sofmeright/crossfreight/src/target"
)

// Per-target lookups. String settings resolve eagerly (target wins, then
// build). Flags and lists return the build and target layers separately:
// the caller decides whether to override or concatenate them.

// Target returns the [target.<triple>] entry for t, if any.
func (c *CrossToml) Target(t target.Target) (TargetConfig, bool) {
	if c == nil {
		return TargetConfig{}, false
	}
	tc, ok := c.Targets[t.Triple()]
	return tc, ok
}

// Image returns target.<triple>.image.
func (c *CrossToml) Image(t target.Target) (string, bool) {
	return c.getString(t, nil, func(tc TargetConfig) *string { return tc.Image })
}

// Runner returns target.<triple>.runner.
func (c *CrossToml) Runner(t target.Target) (string, bool) {
	return c.getString(t, nil, func(tc TargetConfig) *string { return tc.Runner })
}

// Dockerfile returns the dockerfile path of the target, else of [build].
func (c *CrossToml) Dockerfile(t target.Target) (string, bool) {
	return c.getString(t,
		func(b BuildConfig) *string { return dockerfileFile(b.Dockerfile) },
		func(tc TargetConfig) *string { return dockerfileFile(tc.Dockerfile) },
	)
}

// DockerfileContext returns the dockerfile build context of the target, else of [build].
func (c *CrossToml) DockerfileContext(t target.Target) (string, bool) {
	return c.getString(t,
		func(b BuildConfig) *string { return dockerfileContext(b.Dockerfile) },
		func(tc TargetConfig) *string { return dockerfileContext(tc.Dockerfile) },
	)
}

// DockerfileBuildArgs returns the union of the build and target build-args;
// target entries win on key collision. Nil when neither layer sets any.
func (c *CrossToml) DockerfileBuildArgs(t target.Target) map[string]string {
	if c == nil {
		return nil
	}
	var build, tgt map[string]string
	if c.Build.Dockerfile != nil {
		build = c.Build.Dockerfile.BuildArgs
	}
	if tc, ok := c.Target(t); ok && tc.Dockerfile != nil {
		tgt = tc.Dockerfile.BuildArgs
	}
	if build == nil && tgt == nil {
		return nil
	}
	out := make(map[string]string, len(build)+len(tgt))
	maps.Copy(out, build)
	maps.Copy(out, tgt)
	return out
}

// Xargo returns build.xargo and target.<triple>.xargo.
func (c *CrossToml) Xargo(t target.Target) (build, tgt *bool) {
	return c.getBool(t,
		func(b BuildConfig) *bool { return b.Xargo },
		func(tc TargetConfig) *bool { return tc.Xargo },
	)
}

// BuildStd returns build.build-std and target.<triple>.build-std.
func (c *CrossToml) BuildStd(t target.Target) (build, tgt *bool) {
	return c.getBool(t,
		func(b BuildConfig) *bool { return b.BuildStd },
		func(tc TargetConfig) *bool { return tc.BuildStd },
	)
}

// PreBuild returns build.pre-build and target.<triple>.pre-build.
func (c *CrossToml) PreBuild(t target.Target) (build, tgt []string) {
	return c.getList(t,
		func(b BuildConfig) *[]string { return b.PreBuild },
		func(tc TargetConfig) *[]string { return tc.PreBuild },
	)
}

// EnvPassthrough returns build.env.passthrough and target.<triple>.env.passthrough.
func (c *CrossToml) EnvPassthrough(t target.Target) (build, tgt []string) {
	return c.getList(t,
		func(b BuildConfig) *[]string { return b.Env.Passthrough },
		func(tc TargetConfig) *[]string { return tc.Env.Passthrough },
	)
}

// EnvVolumes returns build.env.volumes and target.<triple>.env.volumes.
func (c *CrossToml) EnvVolumes(t target.Target) (build, tgt []string) {
	return c.getList(t,
		func(b BuildConfig) *[]string { return b.Env.Volumes },
		func(tc TargetConfig) *[]string { return tc.Env.Volumes },
	)
}

// DefaultTarget resolves build.default-target against the known triples.
func (c *CrossToml) DefaultTarget(known target.TargetList) (target.Target, bool) {
	if c == nil || c.Build.DefaultTarget == nil {
		return target.Target{}, false
	}
	return target.New(*c.Build.DefaultTarget, known), true
}

func (c *CrossToml) getString(t target.Target, build func(BuildConfig) *string, tgt func(TargetConfig) *string) (string, bool) {
	if c == nil {
		return "", false
	}
	if tc, ok := c.Target(t); ok {
		if v := tgt(tc); v != nil {
			return *v, true
		}
	}
	if build != nil {
		if v := build(c.Build); v != nil {
			return *v, true
		}
	}
	return "", false
}

func (c *CrossToml) getBool(t target.Target, build func(BuildConfig) *bool, tgt func(TargetConfig) *bool) (*bool, *bool) {
	if c == nil {
		return nil, nil
	}
	var tv *bool
	if tc, ok := c.Target(t); ok {
		tv = tgt(tc)
	}
	return build(c.Build), tv
}

func (c *CrossToml) getList(t target.Target, build func(BuildConfig) *[]string, tgt func(TargetConfig) *[]string) ([]string, []string) {
	if c == nil {
		return nil, nil
	}
	var tv []string
	if tc, ok := c.Target(t); ok {
		tv = listValue(tgt(tc))
	}
	return listValue(build(c.Build)), tv
}

func dockerfileFile(d *DockerfileConfig) *string {
	if d == nil {
		return nil
	}
	return &d.File
}

func dockerfileContext(d *DockerfileConfig) *string {
	if d == nil {
		return nil
	}
	return d.Context
}
