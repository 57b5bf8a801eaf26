package pgraw_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/nereus-db/pgraw"
	"github.com/nereus-db/pgraw/internal/fakepg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareSuccess(t *testing.T) {
	client, srv := newTestClient(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		msg, err := srv.Receive()
		require.NoError(t, err)
		parse, ok := msg.(*pgproto3.Parse)
		require.True(t, ok, "expected Parse, got %T", msg)
		assert.Equal(t, "select $1", parse.Query)

		_, err = srv.Receive()
		require.NoError(t, err) // Sync

		require.NoError(t, srv.SendAll(&pgproto3.ParseComplete{}, fakepg.ReadyForQuery()))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stmt, err := pgraw.Prepare(ctx, client, "s1", "select $1", []uint32{23})
	require.NoError(t, err)
	assert.Equal(t, "s1", stmt.Name())
	assert.Equal(t, []uint32{23}, stmt.ParamOIDs())

	<-done
}

func TestPrepareServerError(t *testing.T) {
	client, srv := newTestClient(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := srv.Receive()
		require.NoError(t, err)
		_, err = srv.Receive()
		require.NoError(t, err)

		require.NoError(t, srv.SendAll(
			&pgproto3.ErrorResponse{Severity: "ERROR", Code: "42601", Message: "syntax error"},
			fakepg.ReadyForQuery(),
		))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := pgraw.Prepare(ctx, client, "", "not sql", nil)
	require.Error(t, err)

	var srvErr *pgraw.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "42601", string(srvErr.Code))

	<-done
}

func TestPrepareUnexpectedMessage(t *testing.T) {
	client, srv := newTestClient(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := srv.Receive()
		require.NoError(t, err)
		_, err = srv.Receive()
		require.NoError(t, err)

		require.NoError(t, srv.SendAll(&pgproto3.BindComplete{}, fakepg.ReadyForQuery()))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := pgraw.Prepare(ctx, client, "", "select 1", nil)
	require.Error(t, err)

	var unexpected *pgraw.UnexpectedMessageError
	require.ErrorAs(t, err, &unexpected)

	<-done
}
