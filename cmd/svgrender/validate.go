package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgrender/svgdom"
)

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input.svg>",
		Short: "Check a document's structure without rendering",
		Long: `Check a document's structure without rendering.

Structural errors (missing root, non positive dimensions) exit with
status 1; advisory warnings are printed but do not fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := svgdom.ReadFile(args[0])
			if err != nil {
				return err
			}
			rep := tree.Validate()
			for _, w := range rep.Warnings {
				fmt.Fprintln(os.Stdout, "warning:", w)
			}
			for _, e := range rep.Errors {
				fmt.Fprintln(os.Stdout, "error:", e)
			}
			if !rep.IsValid() {
				return fmt.Errorf("%s: %d error(s)", args[0], len(rep.Errors))
			}
			logger.Info("document is valid", "file", args[0], "warnings", len(rep.Warnings))
			return nil
		},
	}
}
