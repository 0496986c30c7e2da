package main

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <name> [commit]",
		Short: "Create a tag pointing at a commit (default HEAD)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			target := "@"
			if len(args) == 2 {
				target = args[1]
			}
			oid, err := r.ResolveOID(target)
			if err != nil {
				return err
			}
			if err := r.CreateTag(args[0], oid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tag %s created at %s\n", args[0], shortHash(string(oid)))
			return nil
		},
	}
}
