package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"choreboard/internal/engine"
	"choreboard/internal/ui"
)

func newEditCmd() *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "PIN-gated point edits (for the grown-ups)",
	}

	cmd.PersistentFlags().StringVar(&pin, "pin", "", "PIN (prompted without echo when omitted)")

	cmd.AddCommand(
		newEditChoreCmd(&pin),
		newEditChoresCmd(&pin),
		newEditDayCmd(&pin),
		newEditSavedCmd(&pin),
	)

	return cmd
}

// verifyPIN gates one edit. Every edit command calls this again: success is
// one-shot, there is no unlocked session.
func verifyPIN(cmd *cobra.Command, session *engine.Session, pinFlag string) error {
	candidate := pinFlag
	if candidate == "" {
		fmt.Fprint(cmd.OutOrStdout(), ui.IconLock+" PIN: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("read pin: %w", err)
		}
		candidate = strings.TrimSpace(string(b))
	}
	return session.Gate().Verify(candidate)
}

func newEditChoreCmd(pin *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chore <chore_id> <total>",
		Short: "Overwrite one chore's total diamonds",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("chore_id and total are required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("chore_id must be an integer")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("total must be an integer")
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

			if err := verifyPIN(cmd, session, *pin); err != nil {
				return err
			}

			id, _ := strconv.ParseInt(args[0], 10, 64)
			total, _ := strconv.Atoi(args[1])
			if err := session.EditChoreTotals(ctx, map[int64]int{id: total}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s chore #%d  %s\n",
				ui.Good.Render("Updated"), id, ui.LabelValue("grand total", ui.Points(session.GrandTotal())))
			return nil
		},
	}
}

func newEditChoresCmd(pin *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chores <chore_id=total>...",
		Short: "Overwrite several chore totals at once",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one chore_id=total pair is required")
			}
			if _, err := parsePairs(args); err != nil {
				return err
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

			if err := verifyPIN(cmd, session, *pin); err != nil {
				return err
			}

			totals, _ := parsePairs(args)
			if err := session.EditChoreTotals(ctx, totals); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d chores  %s\n",
				ui.Good.Render("Updated"), len(totals), ui.LabelValue("grand total", ui.Points(session.GrandTotal())))
			return nil
		},
	}
}

func parsePairs(args []string) (map[int64]int, error) {
	totals := make(map[int64]int, len(args))
	for _, arg := range args {
		id0, total0, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid pair %q (want chore_id=total)", arg)
		}
		id, err := strconv.ParseInt(id0, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chore_id in %q", arg)
		}
		total, err := strconv.Atoi(total0)
		if err != nil {
			return nil, fmt.Errorf("invalid total in %q", arg)
		}
		totals[id] = total
	}
	return totals, nil
}

func newEditDayCmd(pin *string) *cobra.Command {
	return &cobra.Command{
		Use:   "day <date> <total>",
		Short: "Overwrite one archived day (YYYY-MM-DD); 0 removes it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("date and total are required")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("total must be an integer")
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

			if err := verifyPIN(cmd, session, *pin); err != nil {
				return err
			}

			total, _ := strconv.Atoi(args[1])
			if err := session.EditDailyRecord(ctx, args[0], total); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n",
				ui.Good.Render("Updated"), args[0], ui.LabelValue("total saved", ui.Points(session.TotalSaved())))
			return nil
		},
	}
}

func newEditSavedCmd(pin *string) *cobra.Command {
	return &cobra.Command{
		Use:   "saved <total>",
		Short: "Adjust the all-time saved total (recent days absorb the change)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("total is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("total must be an integer")
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

			if err := verifyPIN(cmd, session, *pin); err != nil {
				return err
			}

			total, _ := strconv.Atoi(args[0])
			if err := session.EditTotalSaved(ctx, total); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
				ui.Good.Render("Adjusted"), ui.LabelValue("total saved", ui.Points(session.TotalSaved())))
			return nil
		},
	}
}
