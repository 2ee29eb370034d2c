package main

import (
	"fmt"

	"github.com/plumbing-vcs/plumb/pkg/object"
	"github.com/plumbing-vcs/plumb/pkg/repo"
	"github.com/spf13/cobra"
)

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <tree>",
		Short: "List the entries of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Discover(".")
			if err != nil {
				return err
			}

			obj, err := r.Lookup(args[0])
			if err != nil {
				return err
			}
			tree, ok := obj.(*object.Tree)
			if !ok {
				return fmt.Errorf("ls-tree: %s is a %s, not a tree", args[0], obj.Kind())
			}

			for _, e := range tree.Entries() {
				fmt.Fprintf(cmd.OutOrStdout(), "%06o %s %s\t%s\n",
					e.Mode(), entryKind(e.Mode()), e.ID(), e.Name())
			}
			return nil
		},
	}
}

func entryKind(mode uint32) object.Type {
	if mode == object.ModeDir {
		return object.TypeTree
	}
	return object.TypeBlob
}
