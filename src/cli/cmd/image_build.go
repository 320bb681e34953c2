package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sofmeright/crossfreight/src/build"
	"github.com/sofmeright/crossfreight/src/output"
)

var (
	ibJobs   int
	ibDryRun bool
	ibJUnit  string
)

var imageBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the toolchain images for the selected targets",
	Long: `Build the images for each selected target.

A target with a configured Dockerfile is built from it; pre-build commands then
run on top of that image, or on the toolchain image when no Dockerfile is set.
Targets with neither use the toolchain image as is.`,
	RunE: runImageBuild,
}

func init() {
	imageBuildCmd.Flags().IntVarP(&ibJobs, "jobs", "j", runtime.NumCPU(), "maximum concurrent image builds")
	imageBuildCmd.Flags().BoolVar(&ibDryRun, "dry-run", false, "print the engine commands without running them")
	imageBuildCmd.Flags().StringVar(&ibJUnit, "junit", "", "write a JUnit report of the builds to this path")

	imageCmd.AddCommand(imageBuildCmd)
}

func runImageBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	color := output.UseColor()
	w := cmd.OutOrStdout()
	start := time.Now()

	targets, err := resolveTargets(imageTargets, imageMatch)
	if err != nil {
		return err
	}

	runner := build.NewExecRunner()
	engine, err := build.DetectEngine(ctx, engineName, nil, runner)
	if err != nil {
		return err
	}
	if err := engine.CheckVersion(); err != nil {
		return err
	}

	plans := make([]build.Plan, 0, len(targets))
	for _, t := range targets {
		p, err := build.PlanTarget(cfg, meta, t)
		if err != nil {
			return fmt.Errorf("target %s: %w", t, err)
		}
		plans = append(plans, p)
	}

	builder := build.NewBuilder(engine, runner, logger, verbose)

	if ibDryRun {
		return printInvocations(cmd, builder, plans)
	}

	jobs := ibJobs
	if jobs < 1 {
		jobs = 1
	}

	output.ContextBlock(w, []output.KV{
		{Key: "engine", Value: engine.String()},
		{Key: "targets", Value: fmt.Sprintf("%d", len(plans))},
		{Key: "workspace", Value: meta.WorkspaceRoot},
		{Key: "jobs", Value: fmt.Sprintf("%d", jobs)},
	})

	output.SectionStart(w, "cf_build", "Build")
	results := make([]build.Result, len(plans))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, p := range plans {
		if p.Empty() {
			results[i] = build.Result{Target: p.Target}
			continue
		}
		g.Go(func() error {
			logger.Info("building", "target", p.Target, "steps", len(p.Steps))
			results[i] = builder.Run(ctx, p, cfg, meta, meta.WorkspaceRoot)
			if err := results[i].Err; err != nil {
				logger.Error("build failed", "target", p.Target, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	output.SectionEnd(w, "cf_build")

	elapsed := time.Since(start)
	failed := renderBuildSummary(w, plans, results, elapsed, color)

	if ibJUnit != "" {
		if err := output.WriteJUnit(ibJUnit, "crossfreight.image", buildOutcomes(results), elapsed); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d target(s) failed to build", failed, len(results))
	}
	return nil
}

func printInvocations(cmd *cobra.Command, builder *build.Builder, plans []build.Plan) error {
	for _, p := range plans {
		if p.Empty() {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s: nothing to build\n", p.Target)
			continue
		}
		for _, step := range p.Steps {
			inv, _, err := builder.Invocation(build.Request{
				Dockerfile: step.Dockerfile,
				Config:     cfg,
				Metadata:   meta,
				HostRoot:   meta.WorkspaceRoot,
				BuildArgs:  step.BuildArgs,
				Target:     p.Target,
			})
			if err != nil {
				return fmt.Errorf("target %s: %w", p.Target, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), inv.String())
		}
	}
	return nil
}

// renderBuildSummary prints one row per target and returns the failure count.
func renderBuildSummary(w io.Writer, plans []build.Plan, results []build.Result, elapsed time.Duration, color bool) int {
	failed := 0
	sec := output.NewSection(w, "Summary", 0, color)
	for i, r := range results {
		var detail string
		switch r.Status() {
		case "failed":
			failed++
			detail = r.Err.Error()
		case "skipped":
			img, err := plans[i].Image(cfg, meta)
			if err != nil {
				detail = "nothing to build"
			} else {
				detail = "uses " + img
			}
		default:
			detail = strings.Join(r.Images, ", ")
		}
		sec.Result(r.Target.Triple(), r.Status(), detail)
	}
	sec.Separator()

	status := "success"
	if failed > 0 {
		status = "failed"
	}
	sec.Total(elapsed, status)
	sec.Close()
	return failed
}

func buildOutcomes(results []build.Result) []output.Outcome {
	out := make([]output.Outcome, 0, len(results))
	for _, r := range results {
		out = append(out, output.Outcome{
			Name:     r.Target.Triple(),
			Status:   r.Status(),
			Detail:   strings.Join(r.Images, ", "),
			Duration: r.Duration,
			Err:      r.Err,
		})
	}
	return out
}
