package main

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newGetTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-tree <tree>",
		Short: "List a tree's entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			oid, err := r.ResolveOID(args[0])
			if err != nil {
				return err
			}
			entries, err := r.ListTree(oid)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", e.Mode, e.OID, e.Name)
			}
			return nil
		},
	}
}
