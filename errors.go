package pgraw

import (
	"errors"
	"fmt"

	"github.com/nereus-db/pgraw/pgerr"
)

// ErrClosed is returned by Client operations once the underlying
// connection is gone: the reader loop has shut down, or a response channel
// was closed before Prepare or Bind received its reply.
var ErrClosed = errors.New("pgraw: connection closed")

var errInvalidUTF8 = errors.New("invalid utf-8")

// UnexpectedMessageError is returned when a backend message falls outside
// the whitelist a ResponseStream is contracted to deliver, or out of the
// order a single-shot operation expects.
type UnexpectedMessageError struct {
	Got string
}

func (e *UnexpectedMessageError) Error() string {
	return fmt.Sprintf("pgraw: unexpected backend message: %s", e.Got)
}

// EncodeError wraps a failure to build an outbound frame, e.g. a name or
// query string that does not round-trip through the wire codec.
type EncodeError struct {
	Cause error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("pgraw: encode: %v", e.Cause) }
func (e *EncodeError) Unwrap() error { return e.Cause }

// IoError wraps a failure writing to, or reading from, the underlying
// connection.
type IoError struct {
	Cause error
}

func (e *IoError) Error() string { return fmt.Sprintf("pgraw: io: %v", e.Cause) }
func (e *IoError) Unwrap() error { return e.Cause }

// ParseError wraps a failure decoding a DataRow or RowDescription body.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string { return fmt.Sprintf("pgraw: parse: %v", e.Cause) }
func (e *ParseError) Unwrap() error { return e.Cause }

// FromSQLError wraps a failure decoding the text representation of a
// SimpleQueryRow column.
type FromSQLError struct {
	Index int
	Cause error
}

func (e *FromSQLError) Error() string {
	return fmt.Sprintf("pgraw: column %d: from sql: %v", e.Index, e.Cause)
}
func (e *FromSQLError) Unwrap() error { return e.Cause }

// ServerError is re-exported so callers can type-assert on the error kind
// returned by Prepare and Bind without importing pgerr directly. Sync never
// returns one: an ErrorResponse in its stream is delivered as a message.
type ServerError = pgerr.ServerError
