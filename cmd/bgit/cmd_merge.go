package main

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <commit-ish>",
		Short: "Merge another commit into HEAD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			outcome, err := r.Merge(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case outcome.UpToDate:
				fmt.Fprintln(out, "Already up to date")
			case outcome.FastForward:
				fmt.Fprintln(out, "Fast-forward merge, no need to commit")
			case outcome.Conflicts:
				fmt.Fprintln(out, "Merged with conflicts, resolve them and commit")
			default:
				fmt.Fprintln(out, "Merged in working tree, commit to conclude")
			}
			return nil
		},
	}
}
