package root

import (
	"context"

	"github.com/spf13/cobra"

	"choreboard/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, session, cmd.OutOrStdout())
		},
	}

	return cmd
}
