package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"choreboard/internal/ui"
)

func newRewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "List rewards and what you can afford",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			balance := session.GrandTotal()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconGift, "Rewards"))
			for _, r := range session.Rewards() {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s %-16s %s  %s  %s\n",
					r.ID, r.Icon, r.Name,
					ui.Points(r.Cost),
					ui.Muted.Render(fmt.Sprintf("bought %d", r.Purchased)),
					ui.Affordable(r.Cost, balance),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total Diamonds", ui.Points(balance)))
			return nil
		},
	}

	return cmd
}
