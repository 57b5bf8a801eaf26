// Package pgraw implements the raw extended-query interface of a PostgreSQL
// client: frame encoding and batching, Sync-delimited dispatch with ordered
// response streams, and Statement/Portal resource handles with drop-triggered
// server-side cleanup.
//
// It deliberately stops short of a full client: no transport/TLS handling,
// no startup handshake or authentication, and no high-level type
// marshalling. Callers hand pgraw an already-authenticated net.Conn and get
// back the extended-query primitives a connection pool or ORM would be built
// on top of.
package pgraw

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nereus-db/pgraw/pgerr"
)

// backendEvent is one slot in a Sync-delimited response channel: either a
// decoded backend message, or a terminal transport error.
type backendEvent struct {
	msg pgproto3.BackendMessage
	err error
}

// Client owns one PostgreSQL connection's extended-query pipeline: the
// pending outbound buffer, the wire codec, and the ordered queue of
// not-yet-delivered response channels.
type Client struct {
	conn     net.Conn
	frontend *pgproto3.Frontend
	logger   *slog.Logger
	types    *pgtype.Map

	// mu serializes everything that touches the pending outbound buffer and
	// the response queue together, so a frame's position in the buffer and
	// its response channel's position in the queue always agree.
	mu      sync.Mutex
	pending int
	queue   []chan backendEvent

	closed atomic.Bool
}

// NewClient wraps an already-connected, already-authenticated conn in a
// Client and starts its background read loop. The caller owns conn and must
// not use it directly once NewClient returns.
func NewClient(conn net.Conn, opts ...Option) *Client {
	c := &Client{
		conn:   conn,
		logger: slog.Default(),
		types:  pgtype.NewMap(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.frontend = pgproto3.NewFrontend(conn, conn)

	go c.readLoop()
	return c
}

// Close tears down the connection. Any response streams still in flight end
// once the reader loop observes the closed connection: as a plain end of
// stream when the read error is io.EOF or net.ErrClosed, otherwise after a
// single IoError item (see shutdown).
func (c *Client) Close() error {
	return c.conn.Close()
}

// readLoop is the connection's single reader. It dispatches every decoded
// backend message to the channel at the front of the response queue,
// popping that channel once a ReadyForQuery closes out its Sync-delimited
// batch.
func (c *Client) readLoop() {
	for {
		msg, err := c.frontend.Receive()
		if err != nil {
			c.shutdown(err)
			return
		}

		c.mu.Lock()
		if len(c.queue) == 0 {
			c.mu.Unlock()
			c.logger.Warn("pgraw: backend message with no pending request", "message", fmt.Sprintf("%T", msg))
			continue
		}
		ch := c.queue[0]
		_, ready := msg.(*pgproto3.ReadyForQuery)
		if ready {
			c.queue = c.queue[1:]
		}
		c.mu.Unlock()

		ch <- backendEvent{msg: msg}
		if ready {
			close(ch)
		}
	}
}

// shutdown runs once, when Receive observes a terminal transport error. A
// graceful close (io.EOF) manifests to every stream as a plain end of
// stream; any other error is delivered as a single error item first.
func (c *Client) shutdown(err error) {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}

	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.mu.Unlock()

	graceful := errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
	for _, ch := range queue {
		if !graceful {
			ch <- backendEvent{err: &IoError{Cause: err}}
		}
		close(ch)
	}
}

// rawBuf appends a frame to the pending buffer without flushing it. Used by
// describe and execute, which never ship their own batch.
func (c *Client) rawBuf(f func(*pgproto3.Frontend) error) error {
	if c.closed.Load() {
		return ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := f(c.frontend); err != nil {
		return err
	}
	c.pending++
	return nil
}

// sendBatch appends a frame, appends a trailing Sync, flushes immediately,
// and registers the resulting response channel. Used by prepare and bind,
// which always run eagerly: the caller gets back a handle only once the
// server has confirmed it.
func (c *Client) sendBatch(f func(*pgproto3.Frontend) error) (chan backendEvent, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := f(c.frontend); err != nil {
		return nil, err
	}
	c.frontend.Send(&pgproto3.Sync{})
	if err := c.frontend.Flush(); err != nil {
		return nil, &IoError{Cause: err}
	}

	ch := make(chan backendEvent, 1)
	c.queue = append(c.queue, ch)
	c.pending = 0
	return ch, nil
}

// sync flushes the pending buffer together with a trailing Sync, and
// returns the resulting QueryStream without waiting for any response.
func (c *Client) sync(context.Context) (*QueryStream, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.frontend.Send(&pgproto3.Sync{})
	if err := c.frontend.Flush(); err != nil {
		return nil, &IoError{Cause: err}
	}

	ch := make(chan backendEvent, 1)
	c.queue = append(c.queue, ch)
	c.pending = 0
	return newQueryStream(ch), nil
}

// sendSimpleQuery sends a standalone Query message. It bypasses the pending
// buffer entirely: a simple query can never be batched with extended-query
// frames, so it refuses to run while any are outstanding rather than
// silently merging them into the same round trip.
func (c *Client) sendSimpleQuery(query string) (chan backendEvent, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != 0 {
		return nil, &EncodeError{Cause: errors.New("simple query cannot run while extended-query frames are pending a Sync")}
	}

	c.frontend.Send(&pgproto3.Query{String: query})
	if err := c.frontend.Flush(); err != nil {
		return nil, &IoError{Cause: err}
	}

	ch := make(chan backendEvent, 1)
	c.queue = append(c.queue, ch)
	return ch, nil
}

// closeServerObject enqueues a Close('S'|'P', name) frame for a
// Statement/Portal whose last owner just released it. If the pending buffer
// was otherwise empty the Close is flushed immediately as its own batch and
// drained in the background; otherwise it rides along with whatever Sync
// the caller dispatches next. Failures are never reported: the server
// reclaims named objects on disconnect regardless.
func (c *Client) closeServerObject(tag byte, name string) {
	if c.closed.Load() {
		return
	}

	c.mu.Lock()
	c.frontend.Send(&pgproto3.Close{ObjectType: tag, Name: name})
	c.pending++
	flush := c.pending == 1

	var ch chan backendEvent
	if flush {
		c.frontend.Send(&pgproto3.Sync{})
		if err := c.frontend.Flush(); err != nil {
			c.mu.Unlock()
			return
		}
		ch = make(chan backendEvent, 1)
		c.queue = append(c.queue, ch)
		c.pending = 0
	}
	c.mu.Unlock()

	if ch != nil {
		go drainChannel(ch)
	}
}

func drainChannel(ch chan backendEvent) {
	for range ch {
	}
}

// awaitExchange reads the first event from ch: a message satisfying match
// succeeds, an ErrorResponse becomes a ServerError, a delivered transport
// error or end of stream is returned as is, and any other message is an
// UnexpectedMessageError. It then drains whatever follows (typically a
// trailing ReadyForQuery) so the connection's single reader never blocks on
// an abandoned channel.
func awaitExchange(ctx context.Context, ch chan backendEvent, match func(pgproto3.BackendMessage) bool) error {
	select {
	case <-ctx.Done():
		go drainChannel(ch)
		return ctx.Err()
	case ev, ok := <-ch:
		if !ok {
			return ErrClosed
		}
		if ev.err != nil {
			return ev.err
		}
		if errMsg, ok := ev.msg.(*pgproto3.ErrorResponse); ok {
			drainChannel(ch)
			return pgerr.FromErrorResponse(errMsg)
		}
		if match(ev.msg) {
			drainChannel(ch)
			return nil
		}
		drainChannel(ch)
		return &UnexpectedMessageError{Got: fmt.Sprintf("%T", ev.msg)}
	}
}
