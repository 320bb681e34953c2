package build

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/sofmeright/crossfreight/src/project"
	"github.com/sofmeright/crossfreight/src/target"
)

// CustomImagePrefix starts every derived image repository name.
const CustomImagePrefix = "cross-custom-"

const preBuildSuffix = "-pre-build"

// ImageName returns the local tag for the image d builds for t.
//
// A FileDockerfile with an explicit Name uses it verbatim. Otherwise the name is
// cross-custom-<workspace>:<triple>-<hash>, where hash identifies the workspace
// path, with a -pre-build suffix for generated Dockerfiles.
func ImageName(d Dockerfile, t target.Target, meta project.Metadata) string {
	suffix := ""
	switch d := d.(type) {
	case FileDockerfile:
		if d.Name != "" {
			return d.Name
		}
	case CustomDockerfile:
		suffix = preBuildSuffix
	}

	return fmt.Sprintf("%s%s:%s-%s%s",
		CustomImagePrefix,
		repositoryName(meta.WorkspaceRoot),
		t.Triple(),
		PathHash(meta.WorkspaceRoot),
		suffix,
	)
}

// PathHash is a short stable digest of a workspace path.
func PathHash(path string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(filepath.Clean(path)))
}

// repositoryName reduces a directory name to characters valid in an image repository.
func repositoryName(root string) string {
	name := strings.ToLower(filepath.Base(root))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), ".-_")
	if out == "" {
		return "workspace"
	}
	return out
}
