package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// State is the lifecycle status of a transaction.
type State string

const (
	StateExecuted State = "EXECUTED"
	StateCanceled State = "CANCELED"
	StatePending  State = "PENDING"
)

// States lists the statuses offered to the user.
var States = []State{StateExecuted, StateCanceled, StatePending}

// Default currency used when a record carries none.
const (
	CurrencyRUB     = "RUB"
	CurrencyRUBName = "руб."
)

// Record is one loosely-typed row as produced by a loader.
type Record = map[string]any

// Currency identifies the currency of an operation amount.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewCurrency returns a Currency whose display name follows the code ("руб." for RUB).
func NewCurrency(code string) Currency {
	name := code
	if code == CurrencyRUB {
		name = CurrencyRUBName
	}
	return Currency{Code: code, Name: name}
}

// OperationAmount is the structured amount of a transaction.
type OperationAmount struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// ZeroAmount is the substitute for missing or unreadable amounts.
func ZeroAmount() OperationAmount {
	return OperationAmount{Amount: "0", Currency: NewCurrency(CurrencyRUB)}
}

// Decimal parses Amount. A comma is accepted as the decimal separator.
func (a OperationAmount) Decimal() (decimal.Decimal, error) {
	s := strings.TrimSpace(a.Amount)
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// "1,000.50": comma is a thousands separator.
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}
	s = strings.ReplaceAll(s, " ", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", a.Amount, err)
	}
	return d, nil
}

// Transaction is the canonical record every query and display function consumes.
type Transaction struct {
	ID              *int
	State           State // empty = absent
	Date            string
	Description     string
	From            string
	To              string
	OperationAmount OperationAmount
	Extra           map[string]any // fields with no dedicated member, passed through as loaded
}

// HasState reports whether the transaction carries a status.
func (t Transaction) HasState() bool {
	return t.State != ""
}

// MarshalJSON writes the transaction in its source shape: known keys plus Extra.
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Extra)+7)
	for k, v := range t.Extra {
		out[k] = v
	}
	if t.ID != nil {
		out["id"] = *t.ID
	}
	if t.State != "" {
		out["state"] = string(t.State)
	}
	if t.Date != "" {
		out["date"] = t.Date
	}
	if t.Description != "" {
		out["description"] = t.Description
	}
	if t.From != "" {
		out["from"] = t.From
	}
	if t.To != "" {
		out["to"] = t.To
	}
	out["operationAmount"] = t.OperationAmount
	return json.Marshal(out)
}
