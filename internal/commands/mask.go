package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankview/bankview/internal/mask"
)

func newMaskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mask <identifier>",
		Short: "Mask a card number or account",
		Long: `Mask a card number or account.

An identifier starting with "Счет" is masked as an account (Счет **1234).
Anything else is treated as a card: the trailing 16 digits are masked and
the card name kept (Visa Platinum 7000 79** **** 6361).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			masked, err := mask.Identifier(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), masked)
			return nil
		},
	}
}

func newDateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "date <timestamp>",
		Short: "Format an ISO timestamp as DD.MM.YYYY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := mask.FormatDate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), date)
			return nil
		},
	}
}

func newCardsCommand() *cobra.Command {
	var start, end int64

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Print a range of formatted card numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if start < 0 || end > 9999999999999999 || start > end {
				return fmt.Errorf("invalid range %d..%d", start, end)
			}
			out := cmd.OutOrStdout()
			for card := range mask.CardNumbers(start, end) {
				fmt.Fprintln(out, card)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&start, "start", 1, "first card number")
	cmd.Flags().Int64Var(&end, "end", 5, "last card number")

	return cmd
}
