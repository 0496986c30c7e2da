package main

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <commit-ish>",
		Short: "Switch the working tree to a branch, tag, or commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			if err := r.Checkout(args[0]); err != nil {
				return err
			}

			branch, err := r.CurrentBranchName()
			if err == nil && branch != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Switched to branch %s\n", branch)
				return nil
			}
			head, err := r.ResolveOID("@")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "HEAD detached at %s\n", shortHash(string(head)))
			return nil
		},
	}
}
