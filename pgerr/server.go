package pgerr

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/nereus-db/pgraw/codes"
)

// ServerError wraps a backend ErrorResponse message. A client never builds
// one of these incrementally: pgproto3 has already fully parsed it off the
// wire, so ServerError just gives the parsed fields a stable, documented
// shape.
type ServerError struct {
	Severity       Severity
	Code           codes.Code
	Message        string
	Detail         string
	Hint           string
	ConstraintName string
	SourceFile     string
	SourceLine     int32
	SourceFunction string
}

// FromErrorResponse converts a decoded backend ErrorResponse into a
// ServerError.
func FromErrorResponse(msg *pgproto3.ErrorResponse) *ServerError {
	if msg == nil {
		return nil
	}

	return &ServerError{
		Severity:       Severity(msg.Severity),
		Code:           codes.Code(msg.Code),
		Message:        msg.Message,
		Detail:         msg.Detail,
		Hint:           msg.Hint,
		ConstraintName: msg.ConstraintName,
		SourceFile:     msg.File,
		SourceLine:     msg.Line,
		SourceFunction: msg.Routine,
	}
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s): %s", e.Severity, e.Message, e.Code, e.Detail)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Severity, e.Message, e.Code)
}

// IsClass reports whether the error code belongs to the given two-character
// SQLSTATE class, e.g. IsClass("23") for integrity-constraint violations.
func (e *ServerError) IsClass(class string) bool {
	return len(e.Code) >= 2 && string(e.Code)[:2] == class
}
