package pgraw

import "github.com/jackc/pgx/v5/pgproto3"

// Execute appends an Execute frame to the pending buffer. It never flushes
// on its own: the resulting DataRow/CommandComplete/PortalSuspended stream
// only ships once the caller calls Sync.
//
// maxRows limits the number of rows returned before PortalSuspended is sent
// in place of CommandComplete; zero means no limit.
func Execute(client *Client, portal *Portal, maxRows uint32) error {
	return client.rawBuf(func(fe *pgproto3.Frontend) error {
		fe.Send(&pgproto3.Execute{Portal: portal.Name(), MaxRows: maxRows})
		return nil
	})
}
