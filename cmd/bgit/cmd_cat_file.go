package main

import (
	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <object>",
		Short: "Print an object's raw content",
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
			_, data, err := r.Store.Read(oid)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
