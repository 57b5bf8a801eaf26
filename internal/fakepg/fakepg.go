// Package fakepg is a minimal scripted PostgreSQL backend used to exercise
// pgraw's client-side extended-query machinery without a real database. It
// is a net.Pipe-backed fake standing in for a real PostgreSQL server, with
// the real pgproto3 codec running on both ends.
package fakepg

import (
	"net"

	"github.com/jackc/pgx/v5/pgproto3"
)

// Server is the backend half of an in-memory connection pair.
type Server struct {
	backend *pgproto3.Backend
	conn    net.Conn
}

// NewPipe returns a connected net.Conn for a pgraw Client and the Server
// driving the other end.
func NewPipe() (clientConn net.Conn, srv *Server) {
	client, server := net.Pipe()
	return client, &Server{
		backend: pgproto3.NewBackend(server, server),
		conn:    server,
	}
}

// Receive reads the next frontend message.
func (s *Server) Receive() (pgproto3.FrontendMessage, error) {
	return s.backend.Receive()
}

// Send writes and flushes one backend message.
func (s *Server) Send(msg pgproto3.BackendMessage) error {
	s.backend.Send(msg)
	return s.backend.Flush()
}

// SendAll writes and flushes a batch of backend messages as a single
// round trip, e.g. ParseComplete followed by ReadyForQuery.
func (s *Server) SendAll(msgs ...pgproto3.BackendMessage) error {
	for _, msg := range msgs {
		s.backend.Send(msg)
	}
	return s.backend.Flush()
}

// Close closes the server's end of the pipe.
func (s *Server) Close() error { return s.conn.Close() }

// ReadyForQuery is a small convenience for the common idle transaction
// status backend messages send to close out a Sync-delimited batch.
func ReadyForQuery() *pgproto3.ReadyForQuery {
	return &pgproto3.ReadyForQuery{TxStatus: 'I'}
}
