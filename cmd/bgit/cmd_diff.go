package main

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [commit]",
		Short: "Show changes between a commit (default HEAD) and the working tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			name := "@"
			if len(args) == 1 {
				name = args[0]
			}
			text, err := r.DiffWorkingTree(name)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
