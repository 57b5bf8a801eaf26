package pgraw

import (
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/jackc/pgx/v5/pgtype"
)

// SimpleColumn describes one column of a simple-query RowDescription. Its
// type is resolved eagerly at construction, via pgtype.Map.TypeForOID,
// rather than lazily on first access.
type SimpleColumn struct {
	name         string
	typ          *pgtype.Type
	format       FormatCode
	tableOID     uint32
	tableAttrNum uint16
	typeModifier int32
}

// Name returns the column's name as reported by the server.
func (c SimpleColumn) Name() string { return c.name }

// Type returns the pgtype registration for the column's OID, or nil if the
// OID is not registered in the client's type map.
func (c SimpleColumn) Type() *pgtype.Type { return c.typ }

// Format returns the column's wire format.
func (c SimpleColumn) Format() FormatCode { return c.format }

// TableOID returns the OID of the table the column belongs to, or zero if
// the column is not a simple table column reference.
func (c SimpleColumn) TableOID() uint32 { return c.tableOID }

// TableAttributeNumber returns the column's attribute number in its table,
// or zero if TableOID is zero.
func (c SimpleColumn) TableAttributeNumber() uint16 { return c.tableAttrNum }

// TypeModifier returns the type-specific modifier for the column, or -1 if
// none applies.
func (c SimpleColumn) TypeModifier() int32 { return c.typeModifier }

// SimpleColumnsFromRowDescription builds the ordered column descriptions
// for a RowDescription message. Column names are validated as UTF-8: unlike
// DataRow bytes, which pgraw never decodes itself, identifiers are a value
// we surface directly to the caller as a Go string, so we validate them at
// this boundary.
func SimpleColumnsFromRowDescription(types *pgtype.Map, msg *pgproto3.RowDescription) ([]SimpleColumn, error) {
	cols := make([]SimpleColumn, len(msg.Fields))
	for i, f := range msg.Fields {
		if !utf8.Valid(f.Name) {
			return nil, &ParseError{Cause: errInvalidUTF8}
		}

		var typ *pgtype.Type
		if t, ok := types.TypeForOID(f.DataTypeOID); ok {
			typ = t
		}

		cols[i] = SimpleColumn{
			name:         string(f.Name),
			typ:          typ,
			format:       FormatCode(f.Format),
			tableOID:     f.TableOID,
			tableAttrNum: f.TableAttributeNumber,
			typeModifier: f.TypeModifier,
		}
	}
	return cols, nil
}
