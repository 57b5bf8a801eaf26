package pgraw_test

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/nereus-db/pgraw"
	"github.com/nereus-db/pgraw/internal/fakepg"
)

// newTestClient wires a pgraw.Client to a fakepg.Server over an in-memory
// pipe, logging through slogt so test output only appears on failure.
func newTestClient(t *testing.T) (*pgraw.Client, *fakepg.Server) {
	t.Helper()

	conn, srv := fakepg.NewPipe()
	client := pgraw.NewClient(conn, pgraw.WithLogger(slogt.New(t)))

	t.Cleanup(func() {
		_ = client.Close()
		_ = srv.Close()
	})

	return client, srv
}
