package main

import (
	"fmt"

	"github.com/plumbing-vcs/plumb/pkg/repo"
	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	var (
		showType  bool
		showSize  bool
		checkOnly bool
	)

	cmd := &cobra.Command{
		Use:   "cat-file <object>",
		Short: "Show object type, size or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Discover(".")
			if err != nil {
				return err
			}

			hexID := args[0]
			if checkOnly {
				ok, err := r.Contains(hexID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("object %s does not exist", hexID)
				}
				return nil
			}

			t, data, err := r.ReadRaw(hexID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case showType:
				fmt.Fprintln(out, t)
			case showSize:
				fmt.Fprintln(out, len(data))
			default:
				out.Write(data)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "show the object's type")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "show the object's size in bytes")
	cmd.Flags().BoolVarP(&checkOnly, "exists", "e", false, "exit non-zero when the object does not exist")
	return cmd
}
