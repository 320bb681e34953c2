package cmd

import (
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sofmeright/crossfreight/src/build"
	"github.com/sofmeright/crossfreight/src/target"
)

var (
	csFormat string
	csTarget string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration",
	Long: `Print the configuration merged from Cargo.toml and Cross.toml.

With --target, print the values resolved for that target instead, environment
variables included.`,
	RunE: runConfigShow,
}

func init() {
	configShowCmd.Flags().StringVar(&csFormat, "format", "toml", "output format: toml or yaml")
	configShowCmd.Flags().StringVarP(&csTarget, "target", "t", "", "resolve the configuration for this target triple")

	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// resolvedTarget is the per-target view printed by config show --target.
type resolvedTarget struct {
	Target      string            `toml:"target" yaml:"target"`
	Kind        string            `toml:"kind" yaml:"kind"`
	Image       string            `toml:"image,omitempty" yaml:"image,omitempty"`
	BuildImage  string            `toml:"build-image,omitempty" yaml:"build-image,omitempty"`
	Runner      string            `toml:"runner,omitempty" yaml:"runner,omitempty"`
	Dockerfile  string            `toml:"dockerfile,omitempty" yaml:"dockerfile,omitempty"`
	Context     string            `toml:"context,omitempty" yaml:"context,omitempty"`
	BuildArgs   map[string]string `toml:"build-args,omitempty" yaml:"build-args,omitempty"`
	PreBuild    []string          `toml:"pre-build,omitempty" yaml:"pre-build,omitempty"`
	Xargo       *bool             `toml:"xargo,omitempty" yaml:"xargo,omitempty"`
	BuildStd    *bool             `toml:"build-std,omitempty" yaml:"build-std,omitempty"`
	Passthrough []string          `toml:"passthrough,omitempty" yaml:"passthrough,omitempty"`
	Volumes     []string          `toml:"volumes,omitempty" yaml:"volumes,omitempty"`
	DebArch     string            `toml:"deb-arch,omitempty" yaml:"deb-arch,omitempty"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var v any = cfg.Toml()
	if csTarget != "" {
		r, err := resolveTarget(target.New(csTarget, target.DefaultTargetList()))
		if err != nil {
			return err
		}
		v = r
	}
	return encode(cmd.OutOrStdout(), csFormat, v)
}

func resolveTarget(t target.Target) (resolvedTarget, error) {
	r := resolvedTarget{
		Target:      t.Triple(),
		Kind:        t.Kind().String(),
		BuildArgs:   cfg.DockerfileBuildArgs(t),
		PreBuild:    cfg.PreBuild(t),
		Passthrough: cfg.EnvPassthrough(t),
		Volumes:     cfg.EnvVolumes(t),
	}
	r.Image, _ = cfg.Image(t)
	r.Runner, _ = cfg.Runner(t)
	r.Dockerfile, _ = cfg.Dockerfile(t)
	r.Context, _ = cfg.DockerfileContext(t)
	r.DebArch, _ = t.DebArch()

	var err error
	if r.Xargo, err = cfg.Xargo(t); err != nil {
		return r, err
	}
	if r.BuildStd, err = cfg.BuildStd(t); err != nil {
		return r, err
	}

	p, err := build.PlanTarget(cfg, meta, t)
	if err != nil {
		logger.Warn("no build image", "target", t, "err", err)
		return r, nil
	}
	if img, err := p.Image(cfg, meta); err == nil {
		r.BuildImage = img
	}
	return r, nil
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "toml":
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q (want toml or yaml)", format)
	}
}
