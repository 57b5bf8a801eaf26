package pgraw

// Row is a zero-copy view over one extended-query DataRow's column values.
// Construction cannot fail: pgproto3 has already validated frame structure
// by the time a DataRow reaches us, so the only remaining per-column
// decoding is the caller's to do via whatever binary codec matches the
// column's OID, which pgraw leaves to the caller.
type Row struct {
	values [][]byte
}

// NewRow wraps a decoded DataRow's column values.
func NewRow(values [][]byte) *Row {
	return &Row{values: values}
}

// Len returns the number of columns in the row.
func (r *Row) Len() int { return len(r.values) }

// IsEmpty reports whether the row has no columns.
func (r *Row) IsEmpty() bool { return len(r.values) == 0 }

// Get returns column i's raw bytes, or nil if the column is SQL NULL. It
// panics if i is out of range, matching a plain slice index rather than
// returning a silent zero value.
func (r *Row) Get(i int) []byte { return r.values[i] }
