package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sofmeright/crossfreight/src/target"
)

const (
	buildEnvPrefix  = "CROSS_BUILD_"
	targetEnvPrefix = "CROSS_TARGET_"
)

// Config layers environment variables over a merged CrossToml.
//
// Variables are CROSS_BUILD_<KEY> for the build layer and
// CROSS_TARGET_<TRIPLE>_<KEY> for the target layer. Single values resolve
// env target, toml target, env build, toml build, in that order. Lists are
// concatenated across all four layers.
type Config struct {
	toml   *CrossToml
	lookup func(string) (string, bool)
}

// NewConfig wraps toml. lookup defaults to os.LookupEnv.
func NewConfig(toml *CrossToml, lookup func(string) (string, bool)) *Config {
	if toml == nil {
		toml = &CrossToml{}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Config{toml: toml, lookup: lookup}
}

// Toml returns the underlying file configuration.
func (c *Config) Toml() *CrossToml { return c.toml }

// Image returns the toolchain image configured for t.
func (c *Config) Image(t target.Target) (string, bool) {
	if v, ok := c.targetEnv(t, "IMAGE"); ok {
		return v, true
	}
	return c.toml.Image(t)
}

// Runner returns the runner configured for t.
func (c *Config) Runner(t target.Target) (string, bool) {
	if v, ok := c.targetEnv(t, "RUNNER"); ok {
		return v, true
	}
	return c.toml.Runner(t)
}

// Dockerfile returns the Dockerfile path for t.
func (c *Config) Dockerfile(t target.Target) (string, bool) {
	return c.resolveString(t, "DOCKERFILE",
		func(tc TargetConfig) *string { return dockerfileFile(tc.Dockerfile) },
		func(b BuildConfig) *string { return dockerfileFile(b.Dockerfile) },
	)
}

// DockerfileContext returns the Dockerfile build context for t.
func (c *Config) DockerfileContext(t target.Target) (string, bool) {
	return c.resolveString(t, "DOCKERFILE_CONTEXT",
		func(tc TargetConfig) *string { return dockerfileContext(tc.Dockerfile) },
		func(b BuildConfig) *string { return dockerfileContext(b.Dockerfile) },
	)
}

// DockerfileBuildArgs returns the merged build-args for t.
func (c *Config) DockerfileBuildArgs(t target.Target) map[string]string {
	return c.toml.DockerfileBuildArgs(t)
}

// Xargo reports whether t is built with xargo. Nil when nothing is configured.
func (c *Config) Xargo(t target.Target) (*bool, error) {
	return c.resolveBool(t, "XARGO", c.toml.Xargo)
}

// BuildStd reports whether t is built with -Zbuild-std. Nil when nothing is configured.
func (c *Config) BuildStd(t target.Target) (*bool, error) {
	return c.resolveBool(t, "BUILD_STD", c.toml.BuildStd)
}

// EnvPassthrough returns every environment variable name forwarded for t.
func (c *Config) EnvPassthrough(t target.Target) []string {
	return c.resolveList(t, "ENV_PASSTHROUGH", c.toml.EnvPassthrough)
}

// EnvVolumes returns every host path mounted for t.
func (c *Config) EnvVolumes(t target.Target) []string {
	return c.resolveList(t, "ENV_VOLUMES", c.toml.EnvVolumes)
}

// PreBuild returns the pre-build commands for t, build layer first.
func (c *Config) PreBuild(t target.Target) []string {
	build, tgt := c.toml.PreBuild(t)
	return concat(build, tgt)
}

// DefaultTarget returns CROSS_BUILD_TARGET, else build.default-target.
func (c *Config) DefaultTarget(known target.TargetList) (target.Target, bool) {
	if v, ok := c.buildEnv("TARGET"); ok {
		return target.New(v, known), true
	}
	return c.toml.DefaultTarget(known)
}

// BuildOpts returns CROSS_BUILD_OPTS, extra arguments for the engine's build command.
func (c *Config) BuildOpts() string {
	v, _ := c.buildEnv("OPTS")
	return v
}

func (c *Config) resolveString(t target.Target, key string, tgt func(TargetConfig) *string, build func(BuildConfig) *string) (string, bool) {
	if v, ok := c.targetEnv(t, key); ok {
		return v, true
	}
	if tc, ok := c.toml.Target(t); ok {
		if v := tgt(tc); v != nil {
			return *v, true
		}
	}
	if v, ok := c.buildEnv(key); ok {
		return v, true
	}
	if v := build(c.toml.Build); v != nil {
		return *v, true
	}
	return "", false
}

func (c *Config) resolveBool(t target.Target, key string, fromToml func(target.Target) (*bool, *bool)) (*bool, error) {
	envTarget, err := c.boolEnv(targetEnvPrefix + t.EnvKey() + "_" + key)
	if err != nil {
		return nil, err
	}
	envBuild, err := c.boolEnv(buildEnvPrefix + key)
	if err != nil {
		return nil, err
	}
	tomlBuild, tomlTarget := fromToml(t)

	for _, v := range []*bool{envTarget, tomlTarget, envBuild, tomlBuild} {
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func (c *Config) resolveList(t target.Target, key string, fromToml func(target.Target) ([]string, []string)) []string {
	tomlBuild, tomlTarget := fromToml(t)
	envBuild, _ := c.buildEnv(key)
	envTarget, _ := c.targetEnv(t, key)
	return concat(tomlBuild, strings.Fields(envBuild), tomlTarget, strings.Fields(envTarget))
}

func (c *Config) boolEnv(name string) (*bool, error) {
	raw, ok := c.lookup(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("environment variable %s: invalid boolean %q", name, raw)
	}
	return &v, nil
}

func (c *Config) buildEnv(key string) (string, bool) {
	return c.nonEmpty(buildEnvPrefix + key)
}

func (c *Config) targetEnv(t target.Target, key string) (string, bool) {
	return c.nonEmpty(targetEnvPrefix + t.EnvKey() + "_" + key)
}

func (c *Config) nonEmpty(name string) (string, bool) {
	v, ok := c.lookup(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
