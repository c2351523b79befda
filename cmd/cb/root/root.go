package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"choreboard/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "cb",
	Short:         "Choreboard — chore diamonds tracker for the fridge door era",
	Long:          "Choreboard is a local-first chore tracker: complete chores to earn diamonds, spend them on rewards, and keep a day-by-day history. Point edits are PIN-gated.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newListCmd(),
		newDoneCmd(),
		newRewardsCmd(),
		newBuyCmd(),
		newSaveCmd(),
		newHistoryCmd(),
		newEditCmd(),
		newExportCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" Error:"), err)
		os.Exit(1)
	}
}
