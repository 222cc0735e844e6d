package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgrender/svgdom"
)

func treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <input.svg>",
		Short: "Print the parsed element tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := svgdom.ReadFile(args[0])
			if err != nil {
				return err
			}
			tree.PrintTree(os.Stdout)
			return nil
		},
	}
}
