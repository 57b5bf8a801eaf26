package pgraw

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jackc/pgx/v5/pgproto3"
)

// QueryStream is the lazy, typed response stream produced by Sync.
// It follows the database/sql Rows convention: call Next until it reports
// false, then check Err. A message outside the whitelist below ends the
// stream with an UnexpectedMessageError; an ErrorResponse is delivered as an
// ordinary data item, never translated into a stream error on its own.
//
// A QueryStream that is never fully drained must be Closed; an
// AddCleanup-registered backstop drains it on garbage collection as a last
// resort, but that should not be relied on.
type QueryStream struct {
	ch      chan backendEvent
	current pgproto3.BackendMessage
	err     error
	done    bool
}

func newQueryStream(ch chan backendEvent) *QueryStream {
	s := &QueryStream{ch: ch}
	runtime.AddCleanup(s, drainChannel, ch)
	return s
}

// Next advances the stream. It returns false once the stream has ended,
// either because the backend sent ReadyForQuery or because ctx was
// cancelled or the connection failed; call Err to distinguish those cases.
func (s *QueryStream) Next(ctx context.Context) bool {
	if s.done {
		return false
	}

	select {
	case <-ctx.Done():
		s.err = ctx.Err()
		s.done = true
		return false
	case ev, ok := <-s.ch:
		if !ok {
			s.done = true
			return false
		}
		if ev.err != nil {
			s.err = ev.err
			s.done = true
			return false
		}
		if !isQueryStreamMessage(ev.msg) {
			s.err = &UnexpectedMessageError{Got: fmt.Sprintf("%T", ev.msg)}
			s.done = true
			return false
		}
		s.current = ev.msg
		return true
	}
}

// Message returns the message Next just delivered.
func (s *QueryStream) Message() pgproto3.BackendMessage { return s.current }

// Err returns the error that ended the stream, if any. A plain end of
// stream (ReadyForQuery, or a graceful connection close) reports nil.
func (s *QueryStream) Err() error { return s.err }

// Close abandons the stream, draining any undelivered messages in the
// background so the connection's reader never blocks on it.
func (s *QueryStream) Close() {
	if s.done {
		return
	}
	s.done = true
	go drainChannel(s.ch)
}

func isQueryStreamMessage(msg pgproto3.BackendMessage) bool {
	switch msg.(type) {
	case *pgproto3.ParseComplete,
		*pgproto3.BindComplete,
		*pgproto3.CloseComplete,
		*pgproto3.ParameterDescription,
		*pgproto3.RowDescription,
		*pgproto3.NoData,
		*pgproto3.DataRow,
		*pgproto3.EmptyQueryResponse,
		*pgproto3.CommandComplete,
		*pgproto3.PortalSuspended,
		*pgproto3.ReadyForQuery,
		*pgproto3.ErrorResponse:
		return true
	default:
		return false
	}
}

// SimpleQueryStream is the response stream produced by SimpleQuery.
// It follows the same Next/Message/Err/Close shape as QueryStream, over a
// narrower whitelist matching the simple query protocol.
type SimpleQueryStream struct {
	ch      chan backendEvent
	current pgproto3.BackendMessage
	err     error
	done    bool
}

func newSimpleQueryStream(ch chan backendEvent) *SimpleQueryStream {
	s := &SimpleQueryStream{ch: ch}
	runtime.AddCleanup(s, drainChannel, ch)
	return s
}

func (s *SimpleQueryStream) Next(ctx context.Context) bool {
	if s.done {
		return false
	}

	select {
	case <-ctx.Done():
		s.err = ctx.Err()
		s.done = true
		return false
	case ev, ok := <-s.ch:
		if !ok {
			s.done = true
			return false
		}
		if ev.err != nil {
			s.err = ev.err
			s.done = true
			return false
		}
		if !isSimpleQueryStreamMessage(ev.msg) {
			s.err = &UnexpectedMessageError{Got: fmt.Sprintf("%T", ev.msg)}
			s.done = true
			return false
		}
		s.current = ev.msg
		return true
	}
}

func (s *SimpleQueryStream) Message() pgproto3.BackendMessage { return s.current }
func (s *SimpleQueryStream) Err() error                       { return s.err }

func (s *SimpleQueryStream) Close() {
	if s.done {
		return
	}
	s.done = true
	go drainChannel(s.ch)
}

func isSimpleQueryStreamMessage(msg pgproto3.BackendMessage) bool {
	switch msg.(type) {
	case *pgproto3.RowDescription,
		*pgproto3.DataRow,
		*pgproto3.EmptyQueryResponse,
		*pgproto3.CommandComplete,
		*pgproto3.ReadyForQuery,
		*pgproto3.ErrorResponse:
		return true
	default:
		return false
	}
}
