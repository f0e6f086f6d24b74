package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/replica/internal/presentation/tui"
	"github.com/aretw0/replica/pkg/domain"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded reconstruction runs",
	Long:  `Lists the runs recorded in the configured store (--store file or redis), oldest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.store == nil {
			return errors.New("no run store configured (use --store file or --store redis)")
		}

		runs, err := a.store.List(cmdContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if runs == nil {
				runs = []domain.Run{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}

		render := tui.NewRenderer(fileOf(cmd.OutOrStdout()))
		out, err := render(tui.RunsTable(runs))
		if err != nil {
			return fmt.Errorf("failed to render runs: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().Bool("json", false, "Print the runs as JSON")
}
