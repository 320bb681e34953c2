package cmd

import (
	"github.com/spf13/cobra"
)

var (
	imageTargets []string
	imageMatch   []string
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Toolchain image commands",
	Long:  "Build and name the per-target images configured with a Dockerfile or pre-build commands.",
}

func init() {
	imageCmd.PersistentFlags().StringArrayVarP(&imageTargets, "target", "t", nil, "target triple (repeatable; default: build.default-target, then the host)")
	imageCmd.PersistentFlags().StringArrayVar(&imageMatch, "match", nil, "select built-in targets by regex, !regex excludes (repeatable)")
	rootCmd.AddCommand(imageCmd)
}
