package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"choreboard/internal/ui"
)

func newSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Archive today's earned diamonds into the history",
		Long: `Save today's earned diamonds into the daily history and reset the
per-chore today counters. Saving twice in one day adds up — the day's record
accumulates. The board also does this automatically when the day rolls over.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := session.ArchiveToday(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s saved to %s  %s\n",
				ui.Good.Render(ui.IconSave+" Saved!"), res.Archived, ui.IconDiamond, res.Day,
				ui.LabelValue("day total", res.DayTotal),
			)
			return nil
		},
	}

	return cmd
}
