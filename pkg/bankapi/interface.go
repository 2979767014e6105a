// Package bankapi defines the accounts service used by the balance and
// statement tools, and an HTTP implementation of it.
package bankapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Account is a single account entry as returned by the accounts service. The
// schema belongs to the core banking system, so entries are kept as decoded
// JSON objects and forwarded to the model unchanged.
type Account map[string]any

// IBAN returns the account IBAN with spaces removed.
func (a Account) IBAN() string {
	return NormalizeAccount(fmt.Sprint(valueOr(a["IBAN"], "")))
}

// Currency returns the account currency tag.
func (a Account) Currency() string {
	return fmt.Sprint(valueOr(a["currencyTag"], ""))
}

// Amount returns the remaining balance. ok is false when it is missing or not
// a number.
func (a Account) Amount() (amount decimal.Decimal, ok bool) {
	switch v := a["amountRest"].(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())

		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))

		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Zero, false
	}
}

// NormalizeAccount strips spaces from an account number or IBAN.
func NormalizeAccount(account string) string {
	return strings.ReplaceAll(account, " ", "")
}

func valueOr(v, fallback any) any {
	if v == nil {
		return fallback
	}

	return v
}

// Client fetches client accounts from the core banking system.
//
//go:generate mockgen -package mockbankapi -source=interface.go -destination=mock/mockbankapi.go *
type Client interface {
	// Accounts lists the accounts of clientID. mode selects the kind of search
	// performed by the accounts service; zero lists every account.
	Accounts(ctx context.Context, clientID int64, mode int64) ([]Account, error)
}
