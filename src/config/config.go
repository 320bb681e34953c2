package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigFile is looked up at the workspace root.
	DefaultConfigFile = "Cross.toml"

	// ManifestFile embeds configuration under package.metadata.cross.
	ManifestFile = "Cargo.toml"

	// ConfigPathEnv overrides the location of DefaultConfigFile.
	ConfigPathEnv = "CROSS_CONFIG"
)

// Sources locates the configuration inputs of a workspace.
type Sources struct {
	// Manifest is the Cargo.toml path. Empty skips the manifest layer.
	Manifest string
	// File is the Cross.toml path. A missing file is not an error.
	File string
}

// DefaultSources returns the sources for a workspace root, honouring
// CROSS_CONFIG through lookup (os.LookupEnv when nil).
func DefaultSources(workspaceRoot string, lookup func(string) (string, bool)) Sources {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	file := filepath.Join(workspaceRoot, DefaultConfigFile)
	if p, ok := lookup(ConfigPathEnv); ok && p != "" {
		file = p
	}
	return Sources{
		Manifest: filepath.Join(workspaceRoot, ManifestFile),
		File:     file,
	}
}

// Load reads the manifest table and the config file and merges them, the
// file taking precedence. Unused keys from either source go to r.
// Returns an empty config when neither source holds any configuration.
func Load(src Sources, r Reporter) (*CrossToml, error) {
	if r == nil {
		r = DiscardReporter
	}

	cfg := &CrossToml{}

	if src.Manifest != "" {
		data, err := os.ReadFile(src.Manifest)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", src.Manifest, err)
		}
		fromManifest, unused, err := ParseManifest(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", src.Manifest, err)
		}
		if fromManifest != nil {
			report(r, src.Manifest, unused)
			cfg = fromManifest
		}
	}

	if src.File != "" {
		data, err := os.ReadFile(src.File)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return cfg, nil
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", src.File, err)
		}
		fromFile, unused, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", src.File, err)
		}
		report(r, src.File, unused)
		cfg = cfg.Merge(fromFile)
	}

	return cfg, nil
}

func report(r Reporter, source string, unused []string) {
	if len(unused) > 0 {
		r.UnusedKeys(source, unused)
	}
}
