package pgraw

import (
	"context"

	"github.com/jackc/pgx/v5/pgproto3"
)

// Prepare sends a Parse frame followed by a Sync, flushes immediately, and
// waits for ParseComplete before returning the resulting Statement.
// name is the server-side statement name; empty names the unnamed
// statement, re-preparing it. paramOIDs declares the type of each
// parameter; a zero OID lets the server infer it from context.
func Prepare(ctx context.Context, client *Client, name, query string, paramOIDs []uint32) (*Statement, error) {
	client.logger.Debug("pgraw: preparing statement", "name", name, "query", query)

	ch, err := client.sendBatch(func(fe *pgproto3.Frontend) error {
		fe.Send(&pgproto3.Parse{Name: name, Query: query, ParameterOIDs: paramOIDs})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := awaitExchange(ctx, ch, isParseComplete); err != nil {
		return nil, err
	}
	return newStatement(client, name, paramOIDs), nil
}

func isParseComplete(msg pgproto3.BackendMessage) bool {
	_, ok := msg.(*pgproto3.ParseComplete)
	return ok
}
