// Package mask redacts card and account numbers and formats dates for display.
package mask

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrValidation is matched by every error this package returns.
var ErrValidation = errors.New("validation error")

// ValidationError describes malformed input to a masking or formatting function.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(input, reason string) error {
	return &ValidationError{Input: input, Reason: reason}
}

const (
	cardLength    = 16
	accountLength = 20

	// AccountMarker prefixes account identifiers, e.g. "Счет 64686473678894779589".
	AccountMarker = "Счет"
)

// CardNumber masks a 16-digit card number as "XXXX XX** **** XXXX".
func CardNumber(card string) (string, error) {
	if len(card) != cardLength || !isDigits(card) {
		return "", invalid(card, fmt.Sprintf("card number must be %d digits", cardLength))
	}
	return card[:4] + " " + card[4:6] + "** **** " + card[12:], nil
}

// AccountNumber masks a 20-digit account number as "**XXXX".
func AccountNumber(account string) (string, error) {
	if len(account) != accountLength || !isDigits(account) {
		return "", invalid(account, fmt.Sprintf("account number must be %d digits", accountLength))
	}
	return "**" + account[accountLength-4:], nil
}

// Identifier masks a "<Kind> <digits>" string. Accounts keep the marker; for
// cards the trailing 16 digits are masked and the brand prefix is kept as is.
func Identifier(s string) (string, error) {
	if s == "" {
		return "", invalid(s, "empty identifier")
	}

	if rest, ok := strings.CutPrefix(s, AccountMarker); ok {
		masked, err := AccountNumber(strings.TrimSpace(rest))
		if err != nil {
			return "", err
		}
		return AccountMarker + " " + masked, nil
	}

	if len(s) < cardLength {
		return "", invalid(s, "identifier too short")
	}
	split := len(s) - cardLength
	masked, err := CardNumber(s[split:])
	if err != nil {
		return "", err
	}
	return s[:split] + masked, nil
}

// FormatDate converts a "YYYY-MM-DDTHH:MM:SS..." timestamp to "DD.MM.YYYY".
func FormatDate(ts string) (string, error) {
	if len(ts) < 11 {
		return "", invalid(ts, "timestamp too short")
	}
	year, month, day := ts[0:4], ts[5:7], ts[8:10]
	if ts[4] != '-' || ts[7] != '-' || !isDigits(year) || !isDigits(month) || !isDigits(day) {
		return "", invalid(ts, "expected YYYY-MM-DD prefix")
	}
	if year[0] == '0' {
		return "", invalid(ts, "year must not start with 0")
	}
	if month < "01" || month > "12" {
		return "", invalid(ts, "month out of range")
	}
	if day < "01" || day > "31" {
		return "", invalid(ts, "day out of range")
	}
	return day + "." + month + "." + year, nil
}

// CardNumbers yields zero-padded card numbers from start to end inclusive,
// grouped as "XXXX XXXX XXXX XXXX".
func CardNumbers(start, end int64) iter.Seq[string] {
	return func(yield func(string) bool) {
		for n := start; n <= end; n++ {
			s := fmt.Sprintf("%016d", n)
			if !yield(s[:4] + " " + s[4:8] + " " + s[8:12] + " " + s[12:]) {
				return
			}
		}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
