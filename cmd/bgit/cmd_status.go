package main

import (
	"fmt"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current branch and working-tree changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			st, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if st.Branch != "" {
				fmt.Fprintf(out, "On branch %s\n", st.Branch)
			} else if st.Detached != "" {
				fmt.Fprintf(out, "HEAD detached at %s\n", shortHash(string(st.Detached)))
			} else {
				fmt.Fprintln(out, "No commits yet")
			}
			if st.MergeInProgress {
				fmt.Fprintln(out, "Merge in progress")
			}

			if len(st.Changes) == 0 {
				fmt.Fprintln(out, "nothing to commit, working tree clean")
				return nil
			}
			fmt.Fprintln(out)
			for _, c := range st.Changes {
				fmt.Fprintf(out, "%9s: %s\n", c.Kind, c.Path)
			}
			return nil
		},
	}
}
