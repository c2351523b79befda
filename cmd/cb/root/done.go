package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"choreboard/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <chore_id>",
		Short: "Mark a chore complete and earn its diamonds",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("chore_id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("chore_id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := session.CompleteChore(ctx, id)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("No chore #%d — nothing changed.", id)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s +%d %s  %s  %s\n",
				ui.Good.Render(ui.IconSparkle+" Done!"), res.Awarded, ui.IconDiamond,
				ui.LabelValue("today", res.TodayPoints),
				ui.LabelValue("total", res.GrandTotal),
			)
			return nil
		},
	}

	return cmd
}
