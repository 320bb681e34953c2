package build

import (
	"fmt"
	"strings"
)

// PreBuildArg carries the pre-build commands into the generated Dockerfile.
const PreBuildArg = "CROSS_CMD"

// PreBuildDockerfile returns a Dockerfile that runs CROSS_CMD on top of base.
func PreBuildDockerfile(base string) CustomDockerfile {
	return CustomDockerfile{Content: fmt.Sprintf(`FROM %s
ARG %s=
ARG %s
RUN eval "${%s}"
`, base, DebArchArg, PreBuildArg, PreBuildArg)}
}

// PreBuildArgs returns the build args for the commands of a pre-build image.
func PreBuildArgs(cmds []string) map[string]string {
	return map[string]string{PreBuildArg: strings.Join(cmds, "\n")}
}
