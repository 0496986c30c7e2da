package main

import (
	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newReadTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-tree <tree>",
		Short: "Replace the working tree with the given tree's content",
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
			return r.ReadTree(oid, "")
		},
	}
}
