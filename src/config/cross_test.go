package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseEmpty(t *testing.T) {
	cfg, unused, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Empty(t, cfg.Targets)
	assert.Equal(t, BuildConfig{}, cfg.Build)
	assert.Empty(t, unused)
}

func TestParseBuild(t *testing.T) {
	cfg, unused, err := Parse([]byte(`
[build]
xargo = true
pre-build = ["echo 'Hello World!'"]

[build.env]
volumes = ["VOL1_ARG", "VOL2_ARG"]
passthrough = ["VAR1", "VAR2"]
`))
	require.NoError(t, err)
	assert.Empty(t, unused)
	assert.Empty(t, cfg.Targets)

	want := BuildConfig{
		Env: EnvConfig{
			Volumes:     ptr([]string{"VOL1_ARG", "VOL2_ARG"}),
			Passthrough: ptr([]string{"VAR1", "VAR2"}),
		},
		Xargo:    ptr(true),
		PreBuild: ptr([]string{"echo 'Hello World!'"}),
	}
	assert.Equal(t, want, cfg.Build)
}

func TestParseTarget(t *testing.T) {
	cfg, unused, err := Parse([]byte(`
[target.aarch64-unknown-linux-gnu.env]
volumes = ["VOL1_ARG", "VOL2_ARG"]
passthrough = ["VAR1", "VAR2"]

[target.aarch64-unknown-linux-gnu]
xargo = false
build-std = true
image = "test-image"
runner = "qemu-user"
`))
	require.NoError(t, err)
	assert.Empty(t, unused)
	assert.Equal(t, BuildConfig{}, cfg.Build)

	require.Contains(t, cfg.Targets, "aarch64-unknown-linux-gnu")
	want := TargetConfig{
		Env: EnvConfig{
			Volumes:     ptr([]string{"VOL1_ARG", "VOL2_ARG"}),
			Passthrough: ptr([]string{"VAR1", "VAR2"}),
		},
		Xargo:    ptr(false),
		BuildStd: ptr(true),
		Image:    ptr("test-image"),
		Runner:   ptr("qemu-user"),
	}
	assert.Equal(t, want, cfg.Targets["aarch64-unknown-linux-gnu"])
}

func TestParseEmptyListIsSet(t *testing.T) {
	cfg, _, err := Parse([]byte(`
[build]
pre-build = []

[build.env]
passthrough = []
`))
	require.NoError(t, err)

	require.NotNil(t, cfg.Build.PreBuild)
	assert.Empty(t, *cfg.Build.PreBuild)
	require.NotNil(t, cfg.Build.Env.Passthrough)
	assert.Nil(t, cfg.Build.Env.Volumes)
}

func TestParseDockerfileShorthandMatchesTable(t *testing.T) {
	short, unused, err := Parse([]byte(`
[target.aarch64-unknown-linux-gnu]
dockerfile = "Dockerfile.test"
`))
	require.NoError(t, err)
	assert.Empty(t, unused)

	full, unused, err := Parse([]byte(`
[target.aarch64-unknown-linux-gnu.dockerfile]
file = "Dockerfile.test"
`))
	require.NoError(t, err)
	assert.Empty(t, unused)

	want := &DockerfileConfig{File: "Dockerfile.test"}
	assert.Equal(t, want, short.Targets["aarch64-unknown-linux-gnu"].Dockerfile)
	assert.Equal(t, short, full)
}

func TestParseDockerfileTable(t *testing.T) {
	cfg, unused, err := Parse([]byte(`
[build]
dockerfile = { file = "Dockerfile", context = "docker", build-args = { A = "1" } }

[target.x86_64-unknown-linux-gnu.dockerfile]
file = "Dockerfile.x86"
build-args = { B = "2" }
`))
	require.NoError(t, err)
	assert.Empty(t, unused)

	assert.Equal(t, &DockerfileConfig{
		File:      "Dockerfile",
		Context:   ptr("docker"),
		BuildArgs: map[string]string{"A": "1"},
	}, cfg.Build.Dockerfile)
	assert.Equal(t, &DockerfileConfig{
		File:      "Dockerfile.x86",
		BuildArgs: map[string]string{"B": "2"},
	}, cfg.Targets["x86_64-unknown-linux-gnu"].Dockerfile)
}

func TestParseUnusedKeys(t *testing.T) {
	cfg, unused, err := Parse([]byte(`
unknown = 1

[build]
xargo = true
bogus = "x"

[build.dockerfile]
file = "Dockerfile"
extra = true

[target.aarch64-unknown-linux-gnu]
image = "img"
imagee = "typo"
`))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"build.bogus",
		"build.dockerfile.extra",
		"target.aarch64-unknown-linux-gnu.imagee",
		"unknown",
	}, unused)

	// Known fields next to unknown ones still decode.
	assert.Equal(t, ptr(true), cfg.Build.Xargo)
	assert.Equal(t, "Dockerfile", cfg.Build.Dockerfile.File)
	assert.Equal(t, ptr("img"), cfg.Targets["aarch64-unknown-linux-gnu"].Image)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid syntax", "[build\nxargo = true"},
		{"list where bool expected", "[build]\nxargo = [true]"},
		{"string where list expected", "[build]\npre-build = \"echo\""},
		{"dockerfile wrong type", "[build]\ndockerfile = 3"},
		{"dockerfile table without file", "[build.dockerfile]\ncontext = \".\""},
		{"build-args wrong type", "[build.dockerfile]\nfile = \"D\"\nbuild-args = { A = 1 }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseManifestWithoutTable(t *testing.T) {
	cfg, unused, err := ParseManifest([]byte(`
[package]
name = "cargo_toml_test_package"
version = "0.1.0"

[dependencies]
cross = "1.2.3"
`))
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Nil(t, unused)
}

func TestParseManifest(t *testing.T) {
	cfg, unused, err := ParseManifest([]byte(`
[package]
name = "cargo_toml_test_package"
version = "0.1.0"

[dependencies]
cross = "1.2.3"

[package.metadata.cross.build]
xargo = true
unknown = 1

[package.metadata.cross.target.aarch64-unknown-linux-gnu]
dockerfile = "Dockerfile.aarch64"
`))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ptr(true), cfg.Build.Xargo)
	assert.Equal(t, "Dockerfile.aarch64", cfg.Targets["aarch64-unknown-linux-gnu"].Dockerfile.File)
	assert.Equal(t, []string{"build.unknown"}, unused)
}

func TestParseManifestErrors(t *testing.T) {
	_, _, err := ParseManifest([]byte("[package\n"))
	assert.Error(t, err)

	_, _, err = ParseManifest([]byte("[package.metadata]\ncross = \"yes\"\n"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := &CrossToml{
		Targets: map[string]TargetConfig{
			"aarch64-unknown-linux-gnu": {
				Env:      EnvConfig{Passthrough: ptr([]string{"VAR1"}), Volumes: ptr([]string{"VOL1_ARG"})},
				Xargo:    ptr(false),
				BuildStd: ptr(true),
				Image:    ptr("test-image1"),
			},
			"target2": {
				Env:      EnvConfig{Passthrough: ptr([]string{"VAR2"}), Volumes: ptr([]string{"VOL2_ARG"})},
				Xargo:    ptr(false),
				BuildStd: ptr(true),
				Image:    ptr("test-image2"),
				Runner:   ptr("qemu-user"),
			},
		},
		Build: BuildConfig{
			Env:      EnvConfig{Passthrough: ptr([]string{"VAR1", "VAR2"}), Volumes: ptr([]string{"V"})},
			BuildStd: ptr(true),
			Xargo:    ptr(true),
			PreBuild: ptr([]string{"apt-get update"}),
		},
	}
	override := &CrossToml{
		Targets: map[string]TargetConfig{
			"target2": {
				Env:      EnvConfig{Passthrough: ptr([]string{"VAR2_PRECEDENCE"})},
				BuildStd: ptr(false),
				Image:    ptr("test-image2-precedence"),
			},
			"target3": {
				Image: ptr("test-image3"),
			},
		},
		Build: BuildConfig{
			Env:           EnvConfig{Passthrough: ptr([]string{"VAR3", "VAR4"})},
			Xargo:         ptr(false),
			DefaultTarget: ptr("aarch64-unknown-linux-gnu"),
		},
	}

	merged := base.Merge(override)

	// Targets: whole-entry replacement, one-sided keys carried through.
	assert.Equal(t, base.Targets["aarch64-unknown-linux-gnu"], merged.Targets["aarch64-unknown-linux-gnu"])
	assert.Equal(t, override.Targets["target2"], merged.Targets["target2"])
	assert.Nil(t, merged.Targets["target2"].Runner)
	assert.Equal(t, override.Targets["target3"], merged.Targets["target3"])
	assert.Len(t, merged.Targets, 3)

	// Build: field taken from override if and only if it is set there.
	assert.Equal(t, BuildConfig{
		Env:           EnvConfig{Passthrough: ptr([]string{"VAR3", "VAR4"}), Volumes: ptr([]string{"V"})},
		BuildStd:      ptr(true),
		Xargo:         ptr(false),
		DefaultTarget: ptr("aarch64-unknown-linux-gnu"),
		PreBuild:      ptr([]string{"apt-get update"}),
	}, merged.Build)
}

func TestMergeDoesNotAlias(t *testing.T) {
	base := &CrossToml{Build: BuildConfig{PreBuild: ptr([]string{"a"})}}
	merged := base.Merge(&CrossToml{})

	(*merged.Build.PreBuild)[0] = "changed"
	assert.Equal(t, "a", (*base.Build.PreBuild)[0])
}

func TestMergeNil(t *testing.T) {
	var base *CrossToml
	merged := base.Merge(nil)
	require.NotNil(t, merged)
	assert.Empty(t, merged.Targets)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := &CrossToml{
		Build: BuildConfig{
			Env:           EnvConfig{Volumes: ptr([]string{"/opt"}), Passthrough: ptr([]string{"RUST_LOG"})},
			Xargo:         ptr(false),
			DefaultTarget: ptr("x86_64-unknown-linux-musl"),
			PreBuild:      ptr([]string{"dpkg --add-architecture arm64"}),
			Dockerfile: &DockerfileConfig{
				File:      "Dockerfile",
				Context:   ptr("."),
				BuildArgs: map[string]string{"A": "1"},
			},
		},
		Targets: map[string]TargetConfig{
			"aarch64-unknown-linux-gnu": {
				Image:    ptr("ghcr.io/example/aarch64:edge"),
				BuildStd: ptr(true),
				Runner:   ptr("qemu-user"),
			},
			"my-custom-target": {
				Dockerfile: &DockerfileConfig{File: "Dockerfile.custom"},
				Env:        EnvConfig{Passthrough: ptr([]string{"FOO"})},
			},
		},
	}

	data, err := cfg.Marshal()
	require.NoError(t, err)

	parsed, unused, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, unused)
	assert.Equal(t, cfg, parsed)
}
