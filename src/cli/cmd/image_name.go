package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/crossfreight/src/build"
)

var imageNameCmd = &cobra.Command{
	Use:   "name",
	Short: "Print the image each target builds in",
	Long: `Print the image name for each selected target without building anything.

With a single target only the name is printed. Targets without a Dockerfile
or pre-build commands print their toolchain image.`,
	RunE: runImageName,
}

func init() {
	imageCmd.AddCommand(imageNameCmd)
}

func runImageName(cmd *cobra.Command, args []string) error {
	targets, err := resolveTargets(imageTargets, imageMatch)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, t := range targets {
		p, err := build.PlanTarget(cfg, meta, t)
		if err != nil {
			return fmt.Errorf("target %s: %w", t, err)
		}
		img, err := p.Image(cfg, meta)
		if err != nil {
			return fmt.Errorf("target %s: %w", t, err)
		}
		if len(targets) == 1 {
			fmt.Fprintln(w, img)
		} else {
			fmt.Fprintf(w, "%s\t%s\n", t, img)
		}
	}
	return nil
}
