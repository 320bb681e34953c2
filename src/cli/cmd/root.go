package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sofmeright/crossfreight/src/config"
	"github.com/sofmeright/crossfreight/src/output"
	"github.com/sofmeright/crossfreight/src/project"
	"github.com/sofmeright/crossfreight/src/target"
)

var (
	cfgFile    string
	verbose    bool
	engineName string

	logger *log.Logger
	meta   project.Metadata
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "crossfreight",
	Short: "Cross-compilation toolchain images",
	Long:  "crossfreight builds and names the container images used to cross-compile a Cargo workspace.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = output.NewLogger(os.Stderr, verbose)
		// Skip project discovery for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		return loadProject()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: Cross.toml at the workspace root, or $CROSS_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "container engine (default: $CROSS_CONTAINER_ENGINE, docker, podman)")
}

func loadProject() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	meta, err = project.Discover(wd, nil)
	if err != nil {
		return err
	}

	src := config.DefaultSources(meta.WorkspaceRoot, nil)
	if cfgFile != "" {
		src.File = cfgFile
	}
	toml, err := config.Load(src, config.LogReporter{Logger: logger})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = config.NewConfig(toml, nil)
	logger.Debug("loaded project", "workspace", meta.WorkspaceRoot, "target-dir", meta.TargetDirectory)
	return nil
}

// resolveTargets returns the distinct targets named on the command line or
// selected by patterns, else the configured default target, else the host.
func resolveTargets(triples, patterns []string) ([]target.Target, error) {
	known := target.DefaultTargetList()

	if len(patterns) > 0 {
		m, err := target.CompileMatcher(patterns)
		if err != nil {
			return nil, err
		}
		selected := m.Select(known)
		if len(selected) == 0 {
			return nil, fmt.Errorf("no built-in target matches %s", strings.Join(patterns, " "))
		}
		triples = append(slices.Clone(triples), selected...)
	}

	if len(triples) == 0 {
		if t, ok := cfg.DefaultTarget(known); ok {
			return []target.Target{t}, nil
		}
		host, ok := target.HostTriple()
		if !ok {
			return nil, fmt.Errorf("unknown host platform: pass --target")
		}
		return []target.Target{target.New(host, known)}, nil
	}

	var out []target.Target
	seen := make(map[string]bool, len(triples))
	for _, triple := range triples {
		if triple == "" || seen[triple] {
			continue
		}
		seen[triple] = true
		out = append(out, target.New(triple, known))
	}
	return out, nil
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error(err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	return nil
}
