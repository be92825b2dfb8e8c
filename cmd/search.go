package cmd

import (
	"fmt"

	"github.com/naka-gawa/github-repos/internal/domain"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search [username]",
		Short: "Lists a GitHub user's public repositories",
		Long: `Lists the public repositories of a GitHub user. Without an argument the
last username that was found is searched again. Use --open or --share with a
row number to act on one repository of the result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			openRow, _ := cmd.Flags().GetInt("open")
			shareRow, _ := cmd.Flags().GetInt("share")

			a, err := newApp(cmd, false)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				// A blank argument is reported through the toast when settling.
				_ = a.controller.Submit(args[0])
			} else {
				a.controller.Start()
			}

			session, err := a.controller.Settle(ctx)
			if err != nil {
				return err
			}
			if session.State != domain.StateShown {
				return errReported
			}

			if openRow > 0 {
				if err := a.list.Activate(openRow); err != nil {
					return err
				}
			}
			if shareRow > 0 {
				if err := a.list.Share(shareRow); err != nil {
					return err
				}
			}
			return nil
		},
	}

	searchCmd.Flags().Int("open", 0, "Open the repository in this row of the result in the browser")
	searchCmd.Flags().Int("share", 0, "Share the link of the repository in this row of the result")
	searchCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		for _, name := range []string{"open", "share"} {
			if row, _ := cmd.Flags().GetInt(name); row < 0 {
				return fmt.Errorf("--%s must be a positive row number", name)
			}
		}
		return nil
	}
	return searchCmd
}
