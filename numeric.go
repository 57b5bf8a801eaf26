package pgraw

import "github.com/shopspring/decimal"

// DecodeNumericText parses a NUMERIC column's text-format bytes (as
// delivered in a simple-query DataRow, where every column is text format)
// into a decimal.Decimal. A nil (SQL NULL) input yields the zero Decimal. pgraw does not decode binary NUMERIC itself, leaving
// high-level type marshalling to the caller, but text format is plain ASCII
// and decimal.Decimal parses it directly, so this is offered as a
// convenience rather than a marshalling layer.
func DecodeNumericText(raw []byte) (decimal.Decimal, error) {
	if raw == nil {
		return decimal.Decimal{}, nil
	}
	return decimal.NewFromString(string(raw))
}
