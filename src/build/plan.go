package build

import (
	"github.com/sofmeright/crossfreight/src/config"
	"github.com/sofmeright/crossfreight/src/project"
	"github.com/sofmeright/crossfreight/src/target"
)

// Plan is the ordered image builds needed for one target.
type Plan struct {
	Target target.Target
	Steps  []Step
}

// Step is a single image build.
type Step struct {
	Dockerfile Dockerfile
	BuildArgs  map[string]string
}

// Empty reports whether the target uses its toolchain image unchanged.
func (p Plan) Empty() bool { return len(p.Steps) == 0 }

// Image returns the image the target's builds run in.
func (p Plan) Image(cfg *config.Config, meta project.Metadata) (string, error) {
	if p.Empty() {
		return BaseImage(cfg, p.Target)
	}
	last := p.Steps[len(p.Steps)-1]
	return ImageName(last.Dockerfile, p.Target, meta), nil
}

// PlanTarget resolves the builds for t. A configured Dockerfile is built first,
// tagged with the target's configured image when there is one; pre-build
// commands then run on top of it, or on the base image when no Dockerfile is
// configured.
func PlanTarget(cfg *config.Config, meta project.Metadata, t target.Target) (Plan, error) {
	p := Plan{Target: t}

	var base string
	if path, ok := cfg.Dockerfile(t); ok {
		d := FileDockerfile{Path: path}
		if img, ok := cfg.Image(t); ok {
			d.Name = img
		}
		if dir, ok := cfg.DockerfileContext(t); ok {
			d.Context = dir
		}
		p.Steps = append(p.Steps, Step{Dockerfile: d, BuildArgs: cfg.DockerfileBuildArgs(t)})
		base = ImageName(d, t, meta)
	}

	if cmds := cfg.PreBuild(t); len(cmds) > 0 {
		if base == "" {
			img, err := BaseImage(cfg, t)
			if err != nil {
				return Plan{}, err
			}
			base = img
		}
		p.Steps = append(p.Steps, Step{Dockerfile: PreBuildDockerfile(base), BuildArgs: PreBuildArgs(cmds)})
	}

	return p, nil
}
