// Package project locates the workspace a build runs for.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	manifestFile = "Cargo.toml"

	// TargetDirEnv overrides the build output directory.
	TargetDirEnv = "CARGO_TARGET_DIR"
)

// ErrNoManifest is returned when no Cargo.toml exists at or above the start directory.
var ErrNoManifest = errors.New("could not find Cargo.toml in the current directory or any parent directory")

// Metadata describes the workspace being built.
type Metadata struct {
	// WorkspaceRoot is the absolute directory holding the root Cargo.toml.
	WorkspaceRoot string
	// TargetDirectory is the build output directory.
	TargetDirectory string
}

// ManifestPath returns the path of the root Cargo.toml.
func (m Metadata) ManifestPath() string {
	return filepath.Join(m.WorkspaceRoot, manifestFile)
}

// Discover walks upward from dir to the nearest directory containing
// Cargo.toml. lookup (os.LookupEnv when nil) is consulted for CARGO_TARGET_DIR.
func Discover(dir string, lookup func(string) (string, bool)) (Metadata, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Metadata{}, fmt.Errorf("resolving %s: %w", dir, err)
	}

	for cur := abs; ; {
		if fi, err := os.Stat(filepath.Join(cur, manifestFile)); err == nil && !fi.IsDir() {
			return New(cur, lookup), nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return Metadata{}, ErrNoManifest
		}
		cur = parent
	}
}

// New returns the metadata for a known workspace root.
func New(root string, lookup func(string) (string, bool)) Metadata {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	root = filepath.Clean(root)

	targetDir := filepath.Join(root, "target")
	if v, ok := lookup(TargetDirEnv); ok && v != "" {
		if !filepath.IsAbs(v) {
			v = filepath.Join(root, v)
		}
		targetDir = filepath.Clean(v)
	}
	return Metadata{WorkspaceRoot: root, TargetDirectory: targetDir}
}
