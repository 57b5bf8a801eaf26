package pgraw

import (
	"context"

	"github.com/jackc/pgx/v5/pgproto3"
)

// Bind sends a Bind frame followed by a Sync, flushes immediately, and
// waits for BindComplete before returning the resulting Portal.
//
// params carries one entry per statement parameter; a nil entry encodes SQL
// NULL, matching pgproto3's own convention for Bind.Parameters.
// A single parameter format code of binary is applied to every parameter,
// and a single result format code of binary is applied to every result
// column.
func Bind(ctx context.Context, client *Client, stmt *Statement, portalName string, params [][]byte) (*Portal, error) {
	client.logger.Debug("pgraw: binding portal", "statement", stmt.Name(), "portal", portalName, "params", len(params))

	ch, err := client.sendBatch(func(fe *pgproto3.Frontend) error {
		fe.Send(&pgproto3.Bind{
			DestinationPortal:    portalName,
			PreparedStatement:    stmt.Name(),
			ParameterFormatCodes: []int16{int16(BinaryFormat)},
			Parameters:           params,
			ResultFormatCodes:    []int16{int16(BinaryFormat)},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := awaitExchange(ctx, ch, isBindComplete); err != nil {
		return nil, err
	}
	return newPortal(client, stmt, portalName), nil
}

func isBindComplete(msg pgproto3.BackendMessage) bool {
	_, ok := msg.(*pgproto3.BindComplete)
	return ok
}
