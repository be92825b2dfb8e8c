package cmd

import (
	"fmt"

	"github.com/naka-gawa/github-repos/internal/prefs"
	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Prints the remembered username",
		Long:  `Prints the username of the last successful search, or nothing when no search has succeeded yet.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := prefs.NewStore(cfg.StateDir, newLogger(cmd))
			if err != nil {
				return err
			}
			username, ok, err := store.Load()
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), username)
			}
			return nil
		},
	}
}
