package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEngineVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"Docker version 24.0.7, build afdd53b", "24.0.7"},
		{"podman version 4.9.3", "4.9.3"},
		{"Docker version 20.10.24+dfsg1, build 297e128", "20.10.24+dfsg1"},
		{"no version here", ""},
	}
	for _, tt := range tests {
		v := ParseEngineVersion(tt.output)
		if tt.want == "" {
			assert.Nil(t, v, tt.output)
			continue
		}
		require.NotNil(t, v, tt.output)
		assert.Equal(t, tt.want, v.String(), tt.output)
	}
}

func TestCheckVersion(t *testing.T) {
	old := Engine{Kind: Docker, Version: semver.MustParse("18.9.1")}
	assert.Error(t, old.CheckVersion())

	ok := Engine{Kind: Docker, Version: semver.MustParse("19.3.0")}
	assert.NoError(t, ok.CheckVersion())

	podman := Engine{Kind: Podman, Version: semver.MustParse("1.5.0")}
	assert.Error(t, podman.CheckVersion())

	unknown := Engine{Kind: Docker}
	assert.NoError(t, unknown.CheckVersion())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Podman, KindOf("/usr/local/bin/podman"))
	assert.Equal(t, Docker, KindOf("/usr/bin/docker"))
	assert.Equal(t, Docker, KindOf("nerdctl"))
}

func TestDetectEngine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "podman")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	runner := &fakeRunner{output: "podman version 4.9.3\n"}
	lookup := envMap(map[string]string{EngineEnv: path})

	e, err := DetectEngine(context.Background(), "", lookup, runner)
	require.NoError(t, err)
	assert.Equal(t, Podman, e.Kind)
	assert.Equal(t, path, e.Path)
	assert.Equal(t, "4.9.3", e.Version.String())
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"--version"}, runner.calls[0].Args)
	assert.Equal(t, "podman 4.9.3", e.String())
}

func TestDetectEngineMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "docker")
	_, err := DetectEngine(context.Background(), missing, envMap(nil), &fakeRunner{})
	assert.ErrorIs(t, err, ErrEngineNotFound)
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	r := &ExecRunner{Stdout: &nopWriter{}, Stderr: &nopWriter{}}
	err := r.Run(context.Background(), Invocation{Path: "sh", Args: []string{"-c", "echo boom >&2; exit 3"}})

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "boom", cmdErr.Stderr)
	assert.Contains(t, cmdErr.Error(), "exit code 3")
}

func TestTailBuffer(t *testing.T) {
	var tb tailBuffer
	big := make([]byte, stderrTail+10)
	for i := range big {
		big[i] = 'a'
	}
	big[len(big)-1] = 'z'
	_, _ = tb.Write(big)
	assert.Len(t, tb.String(), stderrTail)
	assert.Equal(t, byte('z'), tb.String()[stderrTail-1])
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
