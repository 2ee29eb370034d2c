package main

import (
	"fmt"
	"io"
	"os"

	"github.com/plumbing-vcs/plumb/pkg/object"
	"github.com/plumbing-vcs/plumb/pkg/odb"
	"github.com/plumbing-vcs/plumb/pkg/repo"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	var (
		typeName  string
		write     bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "hash-object [file...]",
		Short: "Compute object ids, optionally storing the objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := object.ParseType(typeName)
			if err != nil {
				return err
			}
			if fromStdin == (len(args) > 0) {
				return fmt.Errorf("hash-object: provide file arguments or --stdin, not both")
			}

			var r *repo.Repository
			if write {
				if r, err = repo.Discover("."); err != nil {
					return err
				}
			}

			hashOne := func(data []byte) error {
				if write {
					id, err := r.DB.Write(t, data)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), id)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), odb.HashObject(t, data))
				return nil
			}

			if fromStdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				return hashOne(data)
			}
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if err := hashOne(data); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "blob", "object type to hash as")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "store the object in the repository")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the object content from stdin")
	return cmd
}
