package pgraw

import (
	"runtime"
	"sync/atomic"
	"weak"
)

// Statement is a handle to a named prepared statement on the server. It is
// cheap to share: Clone returns another independent owner of the same
// server-side object. The Close('S', name) frame is enqueued only once the
// last owner has released it, the same reference-counted drop glue an
// Arc<T> gives you in a language with deterministic destructors.
//
// Statement holds only a weak reference to the Client it was prepared
// against, so an outstanding Statement never keeps the connection's reader
// goroutine alive on its own.
type Statement struct {
	core    *statementCore
	cleanup runtime.Cleanup
}

type statementCore struct {
	name      string
	paramOIDs []uint32
	client    weak.Pointer[Client]
	refs      atomic.Int32
}

func newStatement(client *Client, name string, paramOIDs []uint32) *Statement {
	core := &statementCore{
		name:      name,
		paramOIDs: paramOIDs,
		client:    weak.Make(client),
	}
	core.refs.Store(1)

	s := &Statement{core: core}
	s.cleanup = runtime.AddCleanup(s, releaseStatement, core)
	return s
}

// Name returns the server-side name of the statement, empty for the unnamed
// statement.
func (s *Statement) Name() string { return s.core.name }

// ParamOIDs returns the statement's parameter type OIDs in declaration
// order.
func (s *Statement) ParamOIDs() []uint32 { return s.core.paramOIDs }

// Clone returns another independent owner of the same server-side
// statement. The underlying object is released only once every clone,
// including the receiver, has been Closed (or collected).
func (s *Statement) Clone() *Statement {
	s.core.refs.Add(1)

	clone := &Statement{core: s.core}
	clone.cleanup = runtime.AddCleanup(clone, releaseStatement, s.core)
	return clone
}

// Close releases this owner's reference to the statement. Once every owner
// has released it, a Close('S', name) frame is enqueued against the
// connection: merged into the caller's next Sync if one is already pending,
// or dispatched immediately as its own batch otherwise. Close never
// reports a failure; the server reclaims named objects on disconnect.
func (s *Statement) Close() {
	s.cleanup.Stop()
	releaseStatement(s.core)
}

func releaseStatement(core *statementCore) {
	if core.refs.Add(-1) > 0 {
		return
	}

	client := core.client.Value()
	if client == nil {
		return
	}
	client.closeServerObject('S', core.name)
}
