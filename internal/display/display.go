// Package display renders transactions and statistics for the console.
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankview/bankview/internal/mask"
	"github.com/bankview/bankview/internal/model"
)

const rule = "============================================================"

// Options controls Transactions output.
type Options struct {
	Limit     int                          // 0 = all
	Converted map[int]decimal.Decimal      // index in txns -> amount in RUB
	Masker    func(string) (string, error) // defaults to mask.Identifier
}

// Transactions writes a numbered list of txns to w.
func Transactions(w io.Writer, txns []model.Transaction, opts Options) error {
	if opts.Masker == nil {
		opts.Masker = mask.Identifier
	}

	if len(txns) == 0 {
		_, err := fmt.Fprintf(w, "%s\nNo transactions to display\n%s\n", rule, rule)
		return err
	}

	shown := txns
	if opts.Limit > 0 && len(shown) > opts.Limit {
		shown = shown[:opts.Limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nTransactions found: %d", rule, len(txns))
	if len(shown) < len(txns) {
		fmt.Fprintf(&b, " (showing %d)", len(shown))
	}
	fmt.Fprintf(&b, "\n%s\n", rule)

	for i, txn := range shown {
		fmt.Fprintf(&b, "\n#%d\n", i+1)

		if date, err := mask.FormatDate(txn.Date); err == nil {
			fmt.Fprintf(&b, "%s %s\n", date, descriptionOrDefault(txn.Description))
		} else {
			fmt.Fprintf(&b, "date unavailable %s\n", descriptionOrDefault(txn.Description))
		}

		if txn.From != "" {
			fmt.Fprintf(&b, "   From: %s\n", maskOrRaw(opts.Masker, txn.From))
		}
		if txn.To != "" {
			fmt.Fprintf(&b, "   To:   %s\n", maskOrRaw(opts.Masker, txn.To))
		}

		fmt.Fprintf(&b, "   Amount: %s\n", Amount(txn.OperationAmount))
		if rub, ok := opts.Converted[i]; ok && txn.OperationAmount.Currency.Code != model.CurrencyRUB {
			fmt.Fprintf(&b, "   In RUB: %s %s\n", rub.StringFixed(2), model.CurrencyRUBName)
		}
	}
	b.WriteString("\n" + rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Amount formats an operation amount, using "руб." for roubles.
func Amount(a model.OperationAmount) string {
	symbol := a.Currency.Code
	if symbol == model.CurrencyRUB || symbol == "" {
		symbol = model.CurrencyRUBName
	}
	return a.Amount + " " + symbol
}

// Categories writes category counts sorted by name.
func Categories(w io.Writer, counts map[string]int) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "No categories to report")
		return err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Category statistics:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %d\n", name, counts[name])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func maskOrRaw(masker func(string) (string, error), s string) string {
	masked, err := masker(s)
	if err != nil {
		return s
	}
	return masked
}

func descriptionOrDefault(s string) string {
	if s == "" {
		return "(no description)"
	}
	return s
}
