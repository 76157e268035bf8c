package commands

import (
	"github.com/spf13/cobra"

	"github.com/bankview/bankview/internal/display"
	"github.com/bankview/bankview/internal/model"
	"github.com/bankview/bankview/internal/query"
)

func newStatsCommand(a *app) *cobra.Command {
	var src source
	var categories []string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count transactions per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, err := a.loadTransactions(cmd.Context(), src)
			if err != nil {
				return err
			}
			return display.Categories(cmd.OutOrStdout(), query.CountByCategory(txns, a.categories(txns, categories)))
		},
	}

	cmd.Flags().StringVar(&src.format, "format", "", "data format: json, csv or xlsx (default from config)")
	cmd.Flags().StringVar(&src.file, "file", "", "load this file instead of searching the data directory")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "category to count (repeatable)")

	return cmd
}

// categories picks the categories to count: explicit ones first, then the
// configured list, then the default categories present in txns.
func (a *app) categories(txns []model.Transaction, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if len(a.cfg.Categories) > 0 {
		return a.cfg.Categories
	}
	return query.DetectCategories(txns, query.DefaultCategories)
}
