package commands

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bankview/bankview/internal/display"
	"github.com/bankview/bankview/internal/logger"
	"github.com/bankview/bankview/internal/model"
	"github.com/bankview/bankview/internal/query"
	"github.com/bankview/bankview/internal/rates"
)

type showOptions struct {
	source
	state    string
	sort     string
	currency string
	search   string
	limit    int
	asJSON   bool
	convert  bool
}

func newShowCommand(a *app) *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List transactions with optional filtering and sorting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShow(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "data format: json, csv or xlsx (default from config)")
	cmd.Flags().StringVar(&opts.file, "file", "", "load this file instead of searching the data directory")
	cmd.Flags().StringVar(&opts.state, "state", "", "keep only transactions in this state")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort by date: asc or desc")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "keep only transactions in this currency code")
	cmd.Flags().StringVar(&opts.search, "search", "", "keep only transactions whose description contains this text")
	cmd.Flags().IntVar(&opts.limit, "limit", -1, "maximum transactions to print, 0 for all (default from config)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print transactions as JSON")
	cmd.Flags().BoolVar(&opts.convert, "convert", false, "show foreign amounts converted to RUB")

	return cmd
}

func (a *app) runShow(cmd *cobra.Command, opts showOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	descending, err := parseSortOrder(opts.sort)
	if err != nil {
		return err
	}

	txns, err := a.loadTransactions(ctx, opts.source)
	if err != nil {
		return err
	}

	if opts.state != "" && len(txns) > 0 {
		if txns, err = query.FilterByState(txns, opts.state); err != nil {
			return err
		}
	}
	if opts.sort != "" && len(txns) > 0 {
		if txns, err = query.SortByDate(txns, descending); err != nil {
			return err
		}
	}
	if opts.currency != "" {
		txns = slices.Collect(query.FilterByCurrency(slices.Values(txns), opts.currency))
	}
	if opts.search != "" {
		txns = query.FilterByDescription(txns, opts.search)
	}

	if opts.asJSON {
		if txns == nil {
			txns = []model.Transaction{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(txns)
	}

	limit := opts.limit
	if limit < 0 {
		limit = a.cfg.Display.Limit
	}
	dopts := display.Options{Limit: limit}

	if opts.convert {
		client := rates.NewClient(a.cfg.Rates.BaseURL, a.cfg.Rates.APIKey)
		dopts.Converted = convertAmounts(cmd, client, txns, limit)
	}

	return display.Transactions(out, txns, dopts)
}

// convertAmounts converts the foreign-currency amounts among the first limit
// transactions. Failed conversions are logged and left out.
func convertAmounts(cmd *cobra.Command, conv rates.Converter, txns []model.Transaction, limit int) map[int]decimal.Decimal {
	log := logger.FromContext(cmd.Context())

	n := len(txns)
	if limit > 0 && limit < n {
		n = limit
	}

	converted := make(map[int]decimal.Decimal)
	for i, txn := range txns[:n] {
		code := txn.OperationAmount.Currency.Code
		if code == model.CurrencyRUB || code == "" {
			continue
		}
		v, err := conv.ToRUB(cmd.Context(), txn.OperationAmount)
		if err != nil {
			log.Warn().Err(err).Str("currency", code).Str("amount", txn.OperationAmount.Amount).Msg("currency conversion failed")
			continue
		}
		converted[i] = v
	}
	return converted
}

func parseSortOrder(s string) (descending bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "по возрастанию", "возрастанию":
		return false, nil
	case "desc", "по убыванию", "убыванию":
		return true, nil
	default:
		return false, fmt.Errorf("invalid sort order %q: want asc or desc", s)
	}
}
