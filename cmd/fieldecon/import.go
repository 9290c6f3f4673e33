package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ougirez/fieldecon/internal/pkg/logger"
)

func newImportCommand(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a snapshot file and recalculate its totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			snapshot, err := readSnapshot(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			totals, err := a.economics.ImportCase(ctx, snapshot)
			if err != nil {
				return err
			}

			logger.Infof(ctx, "imported case %s", snapshot.Case.ID)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "case %s: total cost %.3f, total income %.3f, cash flow %.3f\n",
				totals.CaseID, totals.TotalCost.Sum(), totals.TotalIncome.Sum(), totals.CashFlow.Sum())
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "snapshot file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
