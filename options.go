package pgraw

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgtype"
)

// Option configures a Client constructed by NewClient.
type Option func(*Client)

// WithLogger overrides the client's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTypeMap overrides the pgtype.Map stored on the client. Defaults to
// pgtype.NewMap(). SimpleColumnsFromRowDescription does not read this map:
// it resolves SimpleColumn.Type() through the map passed to it as an
// argument.
func WithTypeMap(types *pgtype.Map) Option {
	return func(c *Client) {
		c.types = types
	}
}
