package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"choreboard/internal/ui"
)

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <reward_id>",
		Short: "Redeem a reward with saved-up diamonds",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("reward_id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("reward_id must be an integer")
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
			res, err := session.PurchaseReward(ctx, id)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Can't buy that — unknown reward or not enough diamonds. Nothing changed."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s spent %d %s  %s\n",
				ui.Gold.Render(ui.IconGift+" Enjoy!"), res.Cost, ui.IconDiamond,
				ui.LabelValue("remaining", res.GrandTotal),
			)
			return nil
		},
	}

	return cmd
}
