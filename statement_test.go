package pgraw_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/nereus-db/pgraw"
	"github.com/nereus-db/pgraw/internal/fakepg"
	"github.com/stretchr/testify/require"
)

func TestStatementCloseFlushesImmediatelyWhenPendingEmpty(t *testing.T) {
	client, srv := newTestClient(t)
	stmt := prepareFakeStatement(t, client, srv)

	done := make(chan struct{})
	go func() {
		defer close(done)
		msg, err := srv.Receive()
		require.NoError(t, err)
		cl, ok := msg.(*pgproto3.Close)
		require.True(t, ok, "expected Close, got %T", msg)
		require.Equal(t, byte('S'), cl.ObjectType)
		require.Equal(t, "s1", cl.Name)

		_, err = srv.Receive()
		require.NoError(t, err) // Sync

		require.NoError(t, srv.SendAll(&pgproto3.CloseComplete{}, fakepg.ReadyForQuery()))
	}()

	stmt.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Close frame")
	}
}

func TestStatementCloseMergesIntoPendingBatch(t *testing.T) {
	client, srv := newTestClient(t)
	stmt := prepareFakeStatement(t, client, srv)

	require.NoError(t, pgraw.Describe(client, pgraw.DescribeStatement("s1")))
	stmt.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		msg, err := srv.Receive()
		require.NoError(t, err)
		_, ok := msg.(*pgproto3.Describe)
		require.True(t, ok, "expected Describe, got %T", msg)

		msg, err = srv.Receive()
		require.NoError(t, err)
		cl, ok := msg.(*pgproto3.Close)
		require.True(t, ok, "expected Close, got %T", msg)
		require.Equal(t, "s1", cl.Name)

		msg, err = srv.Receive()
		require.NoError(t, err)
		_, ok = msg.(*pgproto3.Sync)
		require.True(t, ok, "expected Sync, got %T", msg)

		require.NoError(t, srv.SendAll(
			&pgproto3.ParameterDescription{},
			&pgproto3.CloseComplete{},
			fakepg.ReadyForQuery(),
		))
	}()

	// Describe only buffers the frame; nothing reaches the wire until the
	// next Sync, which is also what ships the merged Close.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stream, err := pgraw.Sync(ctx, client)
	require.NoError(t, err)
	for stream.Next(ctx) {
	}
	require.NoError(t, stream.Err())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for batch")
	}
}
