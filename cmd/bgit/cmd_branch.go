package main

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name] [start-point]",
		Short: "List branches, or create one at a commit (default HEAD)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				branches, err := r.ListBranches()
				if err != nil {
					return err
				}
				for _, b := range branches {
					marker := " "
					if b.Current {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, b.Name)
				}
				return nil
			}

			start := "@"
			if len(args) == 2 {
				start = args[1]
			}
			oid, err := r.ResolveOID(start)
			if err != nil {
				return err
			}
			if err := r.CreateBranch(args[0], oid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Branch %s created at %s\n", args[0], shortHash(string(oid)))
			return nil
		},
	}
}
