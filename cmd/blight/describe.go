package main

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	"blightcli/internal/analysis"
	"blightcli/internal/dataset"
	"blightcli/internal/infrastructure"
	"blightcli/internal/visual"
)

func describeCmd(configPath *string) *cobra.Command {
	var (
		column    string
		processed bool
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe one column of the raw or processed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			ctx := infrastructure.EnsureRunID(cmd.Context())
			defer a.close(ctx)

			var df dataframe.DataFrame
			if processed {
				df, err = dataset.ReadCSV(a.paths.ProcessedTrainCSV)
			} else {
				df, err = dataset.NewLoader(a.logger, a.metrics).Load(ctx, dataset.Sources{
					Tickets:   a.paths.TrainCSV,
					Addresses: a.paths.AddressesCSV,
					LatLons:   a.paths.LatLonsCSV,
				})
			}
			if err != nil {
				return err
			}

			summary, err := analysis.Describe(df, column)
			if err != nil {
				return err
			}
			visual.Print(cmd.OutOrStdout(), analysis.SummaryTable("Describe "+column, []analysis.Summary{summary}))
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "Column to describe")
	cmd.Flags().BoolVar(&processed, "processed", false, "Describe the processed training table")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}
