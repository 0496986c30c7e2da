package main

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newIterRefsCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "iter-refs",
		Short: "List refs and the commits they point at",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			refs, err := r.IterRefs(prefix, true)
			if err != nil {
				return err
			}
			for _, ref := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ref.Value.Value, ref.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only list refs whose name starts with this prefix")
	return cmd
}
