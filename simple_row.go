package pgraw

import "unicode/utf8"

// SimpleQueryRow is a zero-copy view over one simple-query DataRow. Unlike
// Row, every column is always text format, so TryGet decodes straight to a
// Go string rather than leaving binary decoding to the caller.
type SimpleQueryRow struct {
	values [][]byte
}

// NewSimpleQueryRow wraps a decoded DataRow's column values from the simple
// query protocol.
func NewSimpleQueryRow(values [][]byte) *SimpleQueryRow {
	return &SimpleQueryRow{values: values}
}

// Len returns the number of columns in the row.
func (r *SimpleQueryRow) Len() int { return len(r.values) }

// IsEmpty reports whether the row has no columns.
func (r *SimpleQueryRow) IsEmpty() bool { return len(r.values) == 0 }

// TryGet decodes column i as UTF-8 text. ok is false for a SQL NULL column;
// err is non-nil if the column's bytes are not valid UTF-8. It panics if i
// is out of range.
func (r *SimpleQueryRow) TryGet(i int) (value string, ok bool, err error) {
	v := r.values[i]
	if v == nil {
		return "", false, nil
	}
	if !utf8.Valid(v) {
		return "", true, &FromSQLError{Index: i, Cause: errInvalidUTF8}
	}
	return string(v), true, nil
}
