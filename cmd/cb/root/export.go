package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the daily history as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := yaml.Marshal(session.Records())
			if err != nil {
				return fmt.Errorf("marshal history: %w", err)
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d days to %s\n", len(session.Records()), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
