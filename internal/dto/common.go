package dto

import (
	"errors"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

// parseAmount parses an optional decimal query value. Empty input is an
// error so callers can distinguish "unset" from zero.
func parseAmount(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, errEmptyAmount
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
