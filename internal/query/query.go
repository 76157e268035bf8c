// Package query filters, sorts and counts canonical transactions.
package query

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/bankview/bankview/internal/model"
)

// ErrInvalidArgument is returned when an entry point's preconditions are violated.
var ErrInvalidArgument = errors.New("invalid argument")

var errEmpty = fmt.Errorf("%w: empty transaction list", ErrInvalidArgument)

// FilterByState returns the transactions whose state equals state, ignoring case.
func FilterByState(txns []model.Transaction, state string) ([]model.Transaction, error) {
	if len(txns) == 0 {
		return nil, errEmpty
	}

	target := strings.ToUpper(strings.TrimSpace(state))
	var out []model.Transaction
	for _, txn := range txns {
		if !txn.HasState() {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(string(txn.State))) == target {
			out = append(out, txn)
		}
	}
	return out, nil
}

// SortByDate returns a copy of txns ordered by date string. Transactions
// without a date follow the dated ones in their original order.
func SortByDate(txns []model.Transaction, descending bool) ([]model.Transaction, error) {
	if len(txns) == 0 {
		return nil, errEmpty
	}

	dated := make([]model.Transaction, 0, len(txns))
	var undated []model.Transaction
	for _, txn := range txns {
		if txn.Date == "" {
			undated = append(undated, txn)
			continue
		}
		dated = append(dated, txn)
	}

	slices.SortStableFunc(dated, func(a, b model.Transaction) int {
		if descending {
			return cmp.Compare(b.Date, a.Date)
		}
		return cmp.Compare(a.Date, b.Date)
	})
	return append(dated, undated...), nil
}

// FilterByCurrency lazily yields the transactions whose currency code equals code.
func FilterByCurrency(txns iter.Seq[model.Transaction], code string) iter.Seq[model.Transaction] {
	return func(yield func(model.Transaction) bool) {
		for txn := range txns {
			if txn.OperationAmount.Currency.Code != code {
				continue
			}
			if !yield(txn) {
				return
			}
		}
	}
}

// FilterByDescription returns the transactions whose description contains word, ignoring case.
func FilterByDescription(txns []model.Transaction, word string) []model.Transaction {
	if len(txns) == 0 || word == "" {
		return nil
	}

	needle := strings.ToLower(word)
	var out []model.Transaction
	for _, txn := range txns {
		if strings.Contains(strings.ToLower(txn.Description), needle) {
			out = append(out, txn)
		}
	}
	return out
}

// CountByCategory counts, for each category, the transactions whose description
// contains it (case-insensitive). A transaction may count toward several categories.
func CountByCategory(txns []model.Transaction, categories []string) map[string]int {
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	for _, txn := range txns {
		desc := strings.ToLower(txn.Description)
		for c := range counts {
			if strings.Contains(desc, strings.ToLower(c)) {
				counts[c]++
			}
		}
	}
	return counts
}

// Descriptions yields the description of each transaction in order.
func Descriptions(txns []model.Transaction) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, txn := range txns {
			if !yield(txn.Description) {
				return
			}
		}
	}
}

// DefaultCategories are the operation kinds found in typical bank exports.
var DefaultCategories = []string{
	"Перевод организации",
	"Перевод с карты на карту",
	"Перевод со счета на счет",
	"Открытие вклада",
	"Пополнение",
	"Снятие",
}

// DetectCategories returns the known categories that occur in at least one
// description, in the order they are first seen.
func DetectCategories(txns []model.Transaction, known []string) []string {
	var found []string
	for desc := range Descriptions(txns) {
		for _, c := range known {
			if strings.Contains(desc, c) && !slices.Contains(found, c) {
				found = append(found, c)
			}
		}
	}
	return found
}
