package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"choreboard/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var best int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show best days, recent days, and saved totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCalendar, "Daily History"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Earned Today", ui.Points(session.TodayTotal())))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total Saved", ui.Points(session.TotalSaved())))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			bestDays := session.RankBestDays(best)
			if len(bestDays) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTrophy+" Best Days"))
				for i, rec := range bestDays {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s — %s\n", ui.Medal(i), rec.Date, ui.Points(rec.TotalPoints))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			records := session.Records()
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no days saved yet)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconChart+" Recent Days"))
			for _, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s — %s\n", rec.Date, ui.Points(rec.TotalPoints))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&best, "best", "b", 5, "How many best days to rank")

	return cmd
}
