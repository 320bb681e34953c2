package build

import (
	"errors"
	"fmt"

	"github.com/sofmeright/crossfreight/src/config"
	"github.com/sofmeright/crossfreight/src/target"
	"github.com/sofmeright/crossfreight/src/version"
)

// DefaultRegistry hosts the toolchain images for built-in targets.
const DefaultRegistry = "ghcr.io/cross-rs"

// ErrNoImage is returned for a custom target without a configured image.
var ErrNoImage = errors.New("no image configured")

// BaseImage returns the toolchain image for t: the configured image, else the
// published image for built-in targets.
func BaseImage(cfg *config.Config, t target.Target) (string, error) {
	if img, ok := cfg.Image(t); ok {
		return img, nil
	}
	return ToolchainImage(t)
}

// ToolchainImage returns the published image for a built-in target,
// ignoring any configured image.
func ToolchainImage(t target.Target) (string, error) {
	if !t.IsBuiltIn() {
		return "", fmt.Errorf("%w for custom target %s: set target.%s.image", ErrNoImage, t, t)
	}
	return fmt.Sprintf("%s/%s:%s", DefaultRegistry, t, version.ImageTag()), nil
}
