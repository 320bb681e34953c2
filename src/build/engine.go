package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// EngineEnv selects the container engine executable.
const EngineEnv = "CROSS_CONTAINER_ENGINE"

// ErrEngineNotFound is returned when no container engine is on PATH.
var ErrEngineNotFound = errors.New("no container engine found: install docker or podman, or set " + EngineEnv)

// EngineKind identifies the CLI flavour of a container engine.
type EngineKind string

const (
	Docker EngineKind = "docker"
	Podman EngineKind = "podman"
)

// minVersions are the oldest releases whose build subcommand accepts --platform.
var minVersions = map[EngineKind]*semver.Version{
	Docker: semver.MustParse("19.3.0"),
	Podman: semver.MustParse("1.6.0"),
}

// candidates are probed in order when no engine is configured.
var candidates = []string{"docker", "podman"}

// Engine is a container engine CLI invoked as a subprocess.
type Engine struct {
	Kind    EngineKind
	Path    string
	Version *semver.Version // nil when the version could not be read
}

// KindOf guesses the engine flavour from its executable name.
// Anything that is not podman is driven like docker.
func KindOf(path string) EngineKind {
	name := strings.ToLower(filepath.Base(path))
	if strings.Contains(name, "podman") {
		return Podman
	}
	return Docker
}

// DetectEngine locates the container engine. preferred (from a flag) wins,
// then CROSS_CONTAINER_ENGINE, then docker and podman on PATH. The version is
// read with "<engine> --version" through r; failing to read it is not an error.
func DetectEngine(ctx context.Context, preferred string, lookup func(string) (string, bool), r Runner) (Engine, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	names := candidates
	if preferred == "" {
		if v, ok := lookup(EngineEnv); ok && v != "" {
			preferred = v
		}
	}
	if preferred != "" {
		names = []string{preferred}
	}

	for _, name := range names {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		e := Engine{Kind: KindOf(path), Path: path}
		if out, err := r.Output(ctx, e.Command("--version")); err == nil {
			e.Version = ParseEngineVersion(string(out))
		}
		return e, nil
	}

	if preferred != "" {
		return Engine{}, fmt.Errorf("%w: %q is not executable", ErrEngineNotFound, preferred)
	}
	return Engine{}, ErrEngineNotFound
}

var versionRe = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?[^\s,]*`)

// ParseEngineVersion extracts the version from "<engine> --version" output,
// e.g. "Docker version 24.0.7, build afdd53b". Nil when none is found.
func ParseEngineVersion(output string) *semver.Version {
	m := versionRe.FindString(output)
	if m == "" {
		return nil
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil
	}
	return v
}

// CheckVersion reports an error when the engine is known to be too old to
// build for a pinned platform. An unknown version passes.
func (e Engine) CheckVersion() error {
	floor, ok := minVersions[e.Kind]
	if !ok || e.Version == nil {
		return nil
	}
	if e.Version.LessThan(floor) {
		return fmt.Errorf("%s %s is too old, %s or newer is required", e.Kind, e.Version, floor)
	}
	return nil
}

// Command returns an invocation of the engine with the given arguments.
func (e Engine) Command(args ...string) Invocation {
	return Invocation{Path: e.Path, Args: args}
}

// Subcommand returns an invocation of an engine subcommand, e.g. "build".
// Docker's image-scan suggestions are suppressed.
func (e Engine) Subcommand(name string) Invocation {
	inv := e.Command(name)
	if e.Kind == Docker {
		inv.Env = append(inv.Env, "DOCKER_SCAN_SUGGEST=false")
	}
	return inv
}

func (e Engine) String() string {
	if e.Version != nil {
		return fmt.Sprintf("%s %s", e.Kind, e.Version)
	}
	return string(e.Kind)
}
