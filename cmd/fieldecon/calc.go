package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/domain/dto"
	"github.com/ougirez/fieldecon/internal/service/economics"
)

type calcOptions struct {
	file      string
	currency  string
	precision string
	breakdown bool
}

type calcOutput struct {
	Totals    dto.TotalsResponse     `json:"totals"`
	Breakdown []dto.CategoryResponse `json:"breakdown,omitempty"`
}

// readSnapshot reads a YAML (or JSON, which is valid YAML) snapshot file.
func readSnapshot(path string) (*domain.CaseSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var d dto.CaseSnapshotDto
	if err = yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d.ToDomain()
}

func newCalcCommand() *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the totals of a snapshot file and print them as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := readSnapshot(opts.file)
			if err != nil {
				return err
			}

			p, err := dto.NewPresentation(snapshot.Project, opts.currency, opts.precision)
			if err != nil {
				return err
			}

			totals := economics.Calculate(snapshot)
			out := calcOutput{Totals: p.Totals(&totals)}
			if opts.breakdown {
				b := make(map[economics.Category][]economics.SlotValue)
				for _, category := range economics.Categories() {
					b[category] = economics.Breakdown(snapshot, category)
				}
				out.Breakdown = p.Breakdown(b)
			}

			data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "snapshot file")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "Local or USD, defaults to the project's currency")
	cmd.Flags().StringVar(&opts.precision, "precision", "", "round values to this many decimals")
	cmd.Flags().BoolVar(&opts.breakdown, "breakdown", false, "include per-profile breakdown")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
