package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"choreboard/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chores with today/total diamonds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBroom, "Daily Chores"))
			for _, c := range session.Chores() {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s %-16s %s  %s  %s\n",
					c.ID, c.Icon, c.Name,
					ui.Muted.Render(fmt.Sprintf("%d/day", c.DailyPoints)),
					ui.LabelValue("today", c.TodayPoints),
					ui.LabelValue("total", c.TotalPoints),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total Diamonds", ui.Points(session.GrandTotal())))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Earned Today", ui.Points(session.TodayTotal())))
			return nil
		},
	}

	return cmd
}
