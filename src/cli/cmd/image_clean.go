package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/crossfreight/src/build"
	"github.com/sofmeright/crossfreight/src/output"
)

var (
	icAll    bool
	icDryRun bool
)

var imageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List images built for this workspace",
	RunE:  runImageList,
}

var imageCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove images built for this workspace",
	RunE:  runImageClean,
}

func init() {
	imageListCmd.Flags().BoolVar(&icAll, "all", false, "include images of every workspace")
	imageCleanCmd.Flags().BoolVar(&icAll, "all", false, "include images of every workspace")
	imageCleanCmd.Flags().BoolVar(&icDryRun, "dry-run", false, "list what would be removed")

	imageCmd.AddCommand(imageListCmd)
	imageCmd.AddCommand(imageCleanCmd)
}

func workspaceImages(cmd *cobra.Command) (build.Engine, build.Runner, []build.LocalImage, error) {
	runner := build.NewExecRunner()
	engine, err := build.DetectEngine(cmd.Context(), engineName, nil, runner)
	if err != nil {
		return build.Engine{}, nil, nil, err
	}
	root := meta.WorkspaceRoot
	if icAll {
		root = ""
	}
	images, err := build.ListImages(cmd.Context(), engine, runner, root)
	return engine, runner, images, err
}

func runImageList(cmd *cobra.Command, args []string) error {
	_, _, images, err := workspaceImages(cmd)
	if err != nil {
		return err
	}
	color := output.UseColor()
	w := cmd.OutOrStdout()
	for _, img := range images {
		age := ""
		if !img.Created.IsZero() {
			age = output.Dimmed(time.Since(img.Created).Round(time.Minute).String()+" ago", color)
		}
		fmt.Fprintf(w, "%s\t%s\n", img.Ref(), age)
	}
	return nil
}

func runImageClean(cmd *cobra.Command, args []string) error {
	engine, runner, images, err := workspaceImages(cmd)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		logger.Info("no images to remove")
		return nil
	}
	if icDryRun {
		for _, img := range images {
			fmt.Fprintf(cmd.OutOrStdout(), "would remove %s\n", img.Ref())
		}
		return nil
	}
	if err := build.RemoveImages(cmd.Context(), engine, runner, images); err != nil {
		return err
	}
	logger.Info("removed images", "count", len(images))
	return nil
}
