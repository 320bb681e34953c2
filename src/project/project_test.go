package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte("[package]\n"), 0o644))
	nested := filepath.Join(root, "crates", "core", "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	meta, err := Discover(nested, noEnv)
	require.NoError(t, err)
	assert.Equal(t, root, meta.WorkspaceRoot)
	assert.Equal(t, filepath.Join(root, "target"), meta.TargetDirectory)
	assert.Equal(t, filepath.Join(root, "Cargo.toml"), meta.ManifestPath())
}

func TestDiscoverWithoutManifest(t *testing.T) {
	_, err := Discover(t.TempDir(), noEnv)
	assert.ErrorIs(t, err, ErrNoManifest)
}

func TestNewTargetDirOverride(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == TargetDirEnv {
			return "out", true
		}
		return "", false
	}
	meta := New("/work/app", lookup)
	assert.Equal(t, filepath.Join("/work/app", "out"), meta.TargetDirectory)

	abs := func(string) (string, bool) { return "/tmp/cargo-target", true }
	assert.Equal(t, "/tmp/cargo-target", New("/work/app", abs).TargetDirectory)
}
