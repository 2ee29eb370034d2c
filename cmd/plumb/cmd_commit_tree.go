package main

import (
	"fmt"
	"time"

	"github.com/plumbing-vcs/plumb/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitTreeCmd() *cobra.Command {
	var (
		message string
		parents []string
		sign    bool
		keyPath string
	)

	cmd := &cobra.Command{
		Use:   "commit-tree <tree>",
		Short: "Create a commit object pointing at a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Discover(".")
			if err != nil {
				return err
			}
			cfg, err := r.ReadConfig()
			if err != nil {
				return err
			}
			ident, err := cfg.Identity(time.Now().Unix())
			if err != nil {
				return fmt.Errorf("commit-tree: %w (set [user] name and email in %s/config.toml)", err, repo.DirName)
			}

			commit := r.NewCommit()
			if err := commit.SetTree(args[0]); err != nil {
				return err
			}
			for _, p := range parents {
				if err := commit.AddParent(p); err != nil {
					return err
				}
			}
			if err := commit.SetMessage(message); err != nil {
				return err
			}
			if err := commit.SetAuthor(ident); err != nil {
				return err
			}
			if err := commit.SetCommitter(ident); err != nil {
				return err
			}

			if sign {
				path := keyPath
				if path == "" {
					path = cfg.User.SigningKey
				}
				if path == "" {
					return fmt.Errorf("commit-tree: no signing key (pass --key or set [user] signingkey)")
				}
				signer, err := repo.NewSSHSigner(path)
				if err != nil {
					return err
				}
				if err := repo.SignCommit(commit, signer); err != nil {
					return err
				}
			}

			id, err := commit.Write()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "parent commit id (repeatable)")
	cmd.Flags().BoolVarP(&sign, "sign", "S", false, "sign the commit with an SSH key")
	cmd.Flags().StringVar(&keyPath, "key", "", "path to the OpenSSH private key used with --sign")
	cmd.MarkFlagRequired("message")
	return cmd
}
