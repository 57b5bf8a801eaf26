package pgraw

import "context"

// Sync flushes the pending buffer together with a trailing Sync frame and
// returns the QueryStream that will carry every response up to and
// including the matching ReadyForQuery. It does not wait for any
// response itself: the stream is pulled lazily by the caller.
func Sync(ctx context.Context, client *Client) (*QueryStream, error) {
	return client.sync(ctx)
}
