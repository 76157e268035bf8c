// Package normalize reconciles loader output into canonical transactions.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bankview/bankview/internal/model"
)

// Defect describes a per-record data-quality problem found while normalizing.
type Defect struct {
	Index   int  // position in the input slice
	Dropped bool // true if the record was excluded from the result
	Reason  string
}

func (d Defect) Error() string {
	if d.Dropped {
		return fmt.Sprintf("record %d dropped: %s", d.Index, d.Reason)
	}
	return fmt.Sprintf("record %d: %s", d.Index, d.Reason)
}

// Result holds the normalized transactions and any defects encountered.
type Result struct {
	Transactions []model.Transaction
	Defects      []Defect
}

// Dropped returns how many input records were excluded.
func (r Result) Dropped() int {
	n := 0
	for _, d := range r.Defects {
		if d.Dropped {
			n++
		}
	}
	return n
}

// Known keys with a dedicated Transaction member.
const (
	keyID              = "id"
	keyDate            = "date"
	keyDescription     = "description"
	keyFrom            = "from"
	keyTo              = "to"
	keyOperationAmount = "operationAmount"
	keyAmount          = "amount"
	keyCurrency        = "currency"
	keyCurrencyCode    = "currency_code"
)

var stateKeys = []string{"state", "State", "STATE"}

// Normalize converts loosely-typed records into canonical transactions.
// Elements that are not mappings are dropped and reported; it never fails.
func Normalize(records []any) Result {
	res := Result{Transactions: make([]model.Transaction, 0, len(records))}
	for i, raw := range records {
		rec, ok := raw.(map[string]any)
		if !ok {
			res.Defects = append(res.Defects, Defect{
				Index:   i,
				Dropped: true,
				Reason:  fmt.Sprintf("expected object, got %T", raw),
			})
			continue
		}
		txn, defect := Transaction(rec)
		if defect != "" {
			res.Defects = append(res.Defects, Defect{Index: i, Reason: defect})
		}
		res.Transactions = append(res.Transactions, txn)
	}
	return res
}

// Transaction normalizes a single record. The returned string is non-empty
// when the record was kept but part of it had to be substituted.
func Transaction(rec model.Record) (model.Transaction, string) {
	txn := model.Transaction{Extra: make(map[string]any)}
	consumed := map[string]bool{}

	for _, k := range stateKeys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		consumed[k] = true
		if txn.State == "" && v != nil {
			txn.State = normalizeState(v)
		}
	}

	if v, ok := rec[keyID]; ok {
		consumed[keyID] = true
		if id, ok := toInt(v); ok {
			txn.ID = &id
		} else if v != nil {
			txn.Extra[keyID] = v
		}
	}

	txn.Date = stringField(rec, keyDate, consumed)
	txn.Description = stringField(rec, keyDescription, consumed)
	txn.From = stringField(rec, keyFrom, consumed)
	txn.To = stringField(rec, keyTo, consumed)

	var defect string
	txn.OperationAmount, defect = operationAmount(rec)
	consumed[keyOperationAmount] = true

	for k, v := range rec {
		if !consumed[k] {
			txn.Extra[k] = v
		}
	}
	if len(txn.Extra) == 0 {
		txn.Extra = nil
	}
	return txn, defect
}

func normalizeState(v any) model.State {
	s := strings.TrimSpace(toString(v))
	return model.State(strings.ToUpper(s))
}

func stringField(rec model.Record, key string, consumed map[string]bool) string {
	v, ok := rec[key]
	if !ok {
		return ""
	}
	consumed[key] = true
	return toString(v)
}

func operationAmount(rec model.Record) (model.OperationAmount, string) {
	v := rec[keyOperationAmount]
	if isFalsy(v) {
		return flatAmount(rec), ""
	}

	switch oa := v.(type) {
	case map[string]any:
		return amountFromMap(oa), ""
	case string:
		m, err := parseRelaxedJSON(oa)
		if err != nil {
			return model.ZeroAmount(), fmt.Sprintf("unreadable operationAmount %q: %v", oa, err)
		}
		return amountFromMap(m), ""
	default:
		return model.ZeroAmount(), fmt.Sprintf("unsupported operationAmount type %T", v)
	}
}

// flatAmount builds an amount from the flat amount/currency columns of CSV and XLSX rows.
func flatAmount(rec model.Record) model.OperationAmount {
	amount := "0"
	if v, ok := rec[keyAmount]; ok && v != nil {
		amount = toString(v)
	}

	code := model.CurrencyRUB
	if v, ok := rec[keyCurrency]; ok && v != nil {
		code = toString(v)
	} else if v, ok := rec[keyCurrencyCode]; ok && v != nil {
		code = toString(v)
	}
	return model.OperationAmount{Amount: amount, Currency: model.NewCurrency(code)}
}

func amountFromMap(m map[string]any) model.OperationAmount {
	oa := model.OperationAmount{Amount: "0"}
	if v, ok := m[keyAmount]; ok && v != nil {
		oa.Amount = toString(v)
	}

	switch c := m[keyCurrency].(type) {
	case map[string]any:
		oa.Currency.Code = toString(c["code"])
		oa.Currency.Name = toString(c["name"])
		if oa.Currency.Name == "" {
			oa.Currency = model.NewCurrency(oa.Currency.Code)
		}
	case string:
		oa.Currency = model.NewCurrency(c)
	case nil:
		oa.Currency = model.NewCurrency(model.CurrencyRUB)
	default:
		oa.Currency = model.NewCurrency(toString(c))
	}
	return oa
}

// parseRelaxedJSON decodes a JSON object that may use single quotes as delimiters.
func parseRelaxedJSON(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(strings.ReplaceAll(s, "'", `"`)))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("not an object")
	}
	return m, nil
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case map[string]any:
		return len(x) == 0
	case bool:
		return !x
	default:
		return false
	}
}
