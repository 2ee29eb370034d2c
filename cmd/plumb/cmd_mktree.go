package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/plumbing-vcs/plumb/pkg/repo"
	"github.com/spf13/cobra"
)

// mktree reads ls-tree formatted lines ("<mode> <type> <id>\t<name>")
// from stdin and writes the resulting tree object.
func newMktreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mktree",
		Short: "Build a tree object from ls-tree formatted stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Discover(".")
			if err != nil {
				return err
			}

			tree := r.NewTree()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := scanner.Text()
				if strings.TrimSpace(line) == "" {
					continue
				}

				head, name, ok := strings.Cut(line, "\t")
				if !ok {
					return fmt.Errorf("mktree: malformed line %q", line)
				}
				fields := strings.Fields(head)
				if len(fields) != 3 {
					return fmt.Errorf("mktree: malformed line %q", line)
				}
				mode, err := strconv.ParseUint(fields[0], 8, 32)
				if err != nil {
					return fmt.Errorf("mktree: malformed mode in %q: %w", line, err)
				}
				if err := tree.AddEntry(fields[2], name, uint32(mode)); err != nil {
					return fmt.Errorf("mktree: %w", err)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("mktree: read stdin: %w", err)
			}

			id, err := tree.Write()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
