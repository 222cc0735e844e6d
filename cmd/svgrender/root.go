// Command svgrender rasterizes SVG subset documents to image files.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = newLogger(log.InfoLevel)

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func rootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "svgrender",
		Short: "Rasterize SVG subset documents",
		Long: `svgrender parses an SVG subset document (basic shapes, paths,
groups, transforms, viewBox mapping, stroking and simple clip paths)
and rasterizes it to a raster image.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(renderCommand())
	root.AddCommand(validateCommand())
	root.AddCommand(treeCommand())
	return root
}
