package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sofmeright/crossfreight/src/config"
	"github.com/sofmeright/crossfreight/src/project"
	"github.com/sofmeright/crossfreight/src/target"
)

const (
	// LabelDomain prefixes the labels put on every built image.
	LabelDomain = "org.cross-rs"

	// Platform is the platform images are always built for.
	Platform = "linux/amd64"

	// BaseImageArg names the base toolchain image for user Dockerfiles.
	BaseImageArg = "CROSS_BASE_IMAGE"

	// DebArchArg names the Debian architecture of the target.
	DebArchArg = "CROSS_DEB_ARCH"
)

// Request describes one image build. Config is required.
type Request struct {
	Dockerfile Dockerfile
	Config     *config.Config
	Metadata   project.Metadata
	// HostRoot is the working directory of the engine process.
	HostRoot  string
	BuildArgs map[string]string
	Target    target.Target
}

// Builder drives the container engine's build subcommand.
type Builder struct {
	Engine  Engine
	Runner  Runner
	Logger  *log.Logger
	Verbose bool
}

// NewBuilder creates a Builder. A nil logger discards output.
func NewBuilder(engine Engine, runner Runner, logger *log.Logger, verbose bool) *Builder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{
		Engine:  engine,
		Runner:  runner,
		Logger:  logger,
		Verbose: verbose,
	}
}

// ErrNoConfig is returned for a Request without a Config.
var ErrNoConfig = errors.New("build request has no config")

// Build builds the image for req and returns its name. Generated Dockerfile
// content is written to the target directory before the engine runs.
func (b *Builder) Build(ctx context.Context, req Request) (string, error) {
	inv, name, err := b.Invocation(req)
	if err != nil {
		return "", err
	}
	if d, ok := req.Dockerfile.(CustomDockerfile); ok {
		if _, err := writeCustom(req.Metadata, req.Target, d.Content); err != nil {
			return "", err
		}
	}

	if b.Verbose {
		b.Logger.Info("exec", "cmd", inv.String())
	} else {
		b.Logger.Debug("exec", "cmd", inv.String())
	}

	if err := b.Runner.Run(ctx, inv); err != nil {
		return "", fmt.Errorf("building %s: %w", name, err)
	}
	return name, nil
}

// Invocation assembles the engine build command for req. It neither runs the
// engine nor writes generated Dockerfile content.
func (b *Builder) Invocation(req Request) (Invocation, string, error) {
	if req.Config == nil {
		return Invocation{}, "", ErrNoConfig
	}
	t := req.Target
	name := ImageName(req.Dockerfile, t, req.Metadata)

	inv := b.Engine.Subcommand("build")
	inv.Dir = req.HostRoot
	inv.Arg("--platform", Platform)
	inv.Arg("--label", fmt.Sprintf("%s.for-cross-target=%s", LabelDomain, t.Triple()))
	inv.Arg("--label", fmt.Sprintf("%s.workspace_root=%s", LabelDomain, req.Metadata.WorkspaceRoot))
	inv.Arg("--tag", name)

	for _, k := range slices.Sorted(maps.Keys(req.BuildArgs)) {
		inv.Arg("--build-arg", k+"="+req.BuildArgs[k])
	}
	if arch, ok := t.DebArch(); ok {
		inv.Arg("--build-arg", DebArchArg+"="+arch)
	}

	var path, buildContext string
	switch d := req.Dockerfile.(type) {
	case FileDockerfile:
		path, buildContext = d.Path, d.Context
		if base, err := fileBaseImage(req.Config, d, t); err == nil {
			inv.Arg("--build-arg", BaseImageArg+"="+base)
		}
	case CustomDockerfile:
		path = customPath(req.Metadata, t)
	default:
		return Invocation{}, "", fmt.Errorf("unsupported dockerfile %T", req.Dockerfile)
	}
	inv.Arg("--file", path)

	if opts := req.Config.BuildOpts(); opts != "" {
		inv.Arg(ParseBuildOpts(opts)...)
	}

	if buildContext == "" {
		buildContext = "."
	}
	inv.Arg(buildContext)

	return inv, name, nil
}

// fileBaseImage is the image a user Dockerfile builds FROM. When the Dockerfile
// is tagged with the configured image, that image is the output and the
// published toolchain image is the base.
func fileBaseImage(cfg *config.Config, d FileDockerfile, t target.Target) (string, error) {
	if d.Name != "" {
		return ToolchainImage(t)
	}
	return BaseImage(cfg, t)
}

// ParseBuildOpts splits CROSS_BUILD_OPTS on whitespace. Quoting is not interpreted.
func ParseBuildOpts(raw string) []string {
	return strings.Fields(raw)
}

// Run builds every step of p in order, stopping at the first failure.
func (b *Builder) Run(ctx context.Context, p Plan, cfg *config.Config, meta project.Metadata, hostRoot string) Result {
	start := time.Now()
	res := Result{Target: p.Target}

	for _, step := range p.Steps {
		name, err := b.Build(ctx, Request{
			Dockerfile: step.Dockerfile,
			Config:     cfg,
			Metadata:   meta,
			HostRoot:   hostRoot,
			BuildArgs:  step.BuildArgs,
			Target:     p.Target,
		})
		if err != nil {
			res.Err = err
			break
		}
		res.Images = append(res.Images, name)
	}

	res.Duration = time.Since(start)
	return res
}
