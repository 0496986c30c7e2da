package main

import (
	"fmt"
	"strings"

	"github.com/bgit-dev/bgit/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [commit]",
		Short: "Show the commit history from a commit (default HEAD)",
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
			from, err := r.ResolveOID(name)
			if err != nil {
				return err
			}
			entries, err := r.Log(from)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				decoration := ""
				if len(e.Refs) > 0 {
					decoration = fmt.Sprintf(" (%s)", strings.Join(e.Refs, ", "))
				}
				fmt.Fprintf(out, "commit %s%s\n", e.OID, decoration)
				fmt.Fprintf(out, "date   %s\n\n", e.Commit.Timestamp)
				for _, line := range strings.Split(e.Commit.Message, "\n") {
					fmt.Fprintf(out, "    %s\n", line)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
