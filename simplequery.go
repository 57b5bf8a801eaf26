package pgraw

import "context"

// SimpleQuery runs query through the simple query protocol: a standalone
// Query frame, flushed immediately, bypassing the pending extended-query
// buffer entirely. It returns a SimpleQueryStream carrying every
// response up to and including the matching ReadyForQuery.
//
// SimpleQuery refuses to run while extended-query frames are buffered
// awaiting a Sync, since the two protocols are never batched together.
func SimpleQuery(ctx context.Context, client *Client, query string) (*SimpleQueryStream, error) {
	client.logger.Debug("pgraw: executing simple query", "query", query)

	ch, err := client.sendSimpleQuery(query)
	if err != nil {
		return nil, err
	}
	return newSimpleQueryStream(ch), nil
}
