package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sofmeright/crossfreight/src/project"
	"github.com/sofmeright/crossfreight/src/target"
)

// Dockerfile is the build recipe for an image: a FileDockerfile on disk or
// a CustomDockerfile generated in memory.
type Dockerfile interface {
	isDockerfile()
}

// FileDockerfile is a user-supplied Dockerfile.
type FileDockerfile struct {
	Path    string
	Context string // build context; "." when empty
	Name    string // explicit image name; derived when empty
}

// CustomDockerfile is Dockerfile content synthesised by the tool.
type CustomDockerfile struct {
	Content string
}

func (FileDockerfile) isDockerfile()   {}
func (CustomDockerfile) isDockerfile() {}

// customPath is where generated content for t is materialised before a build.
func customPath(meta project.Metadata, t target.Target) string {
	triple := t.Triple()
	return filepath.Join(meta.TargetDirectory, triple, fmt.Sprintf("Dockerfile.%s-custom", triple))
}

// writeCustom writes content to the target directory, replacing any previous copy.
func writeCustom(meta project.Metadata, t target.Target, content string) (string, error) {
	path := customPath(meta, t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
