package config

import (
	"fmt"
	"maps"

	toml "github.com/pelletier/go-toml/v2"
)

// DockerfileConfig references a user-supplied Dockerfile.
//
// Accepts either a bare path or a table:
//
//	dockerfile = "Dockerfile.aarch64"
//
//	[target.aarch64-unknown-linux-gnu.dockerfile]
//	file = "Dockerfile.aarch64"
//	context = "docker"
//	build-args = { OPENSSL_VERSION = "3.0" }
type DockerfileConfig struct {
	File      string            `toml:"file" yaml:"file"`
	Context   *string           `toml:"context,omitempty" yaml:"context,omitempty"`
	BuildArgs map[string]string `toml:"build-args,omitempty" yaml:"build-args,omitempty"`
}

func (d *DockerfileConfig) clone() *DockerfileConfig {
	if d == nil {
		return nil
	}
	return &DockerfileConfig{
		File:      d.File,
		Context:   clonePtr(d.Context),
		BuildArgs: maps.Clone(d.BuildArgs),
	}
}

// decodeDockerfile resolves the string-or-table dockerfile value found at path.
// A string is shorthand for a table holding only file. The table form is
// decoded strictly; unknown keys are returned with path prepended.
func decodeDockerfile(value any, path string) (*DockerfileConfig, []string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil, nil
	case string:
		return &DockerfileConfig{File: v}, nil, nil
	case map[string]any:
		data, err := toml.Marshal(v)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		var d DockerfileConfig
		unused, err := decodeStrict(data, &d)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		if d.File == "" {
			return nil, nil, fmt.Errorf("%s: missing field `file`", path)
		}
		for i := range unused {
			unused[i] = path + "." + unused[i]
		}
		return &d, unused, nil
	default:
		return nil, nil, fmt.Errorf("%s: expected string or table, got %T", path, value)
	}
}
