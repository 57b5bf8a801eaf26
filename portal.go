package pgraw

import (
	"runtime"
	"sync/atomic"
	"weak"
)

// Portal is a handle to a bound portal on the server. It shares Statement's
// weak-reference-to-Client, strong-reference-to-parent, reference-counted
// Clone/Close shape, but always enqueues a Close('P', name) frame.
//
// A Portal keeps its parent Statement alive (a strong Clone, released when
// the Portal itself is released) for as long as the portal exists, since
// binding a portal from a statement that has already been closed server-side
// is a protocol error.
type Portal struct {
	core    *portalCore
	cleanup runtime.Cleanup
}

type portalCore struct {
	name   string
	stmt   *Statement
	client weak.Pointer[Client]
	refs   atomic.Int32
}

func newPortal(client *Client, stmt *Statement, name string) *Portal {
	core := &portalCore{
		name:   name,
		stmt:   stmt.Clone(),
		client: weak.Make(client),
	}
	core.refs.Store(1)

	p := &Portal{core: core}
	p.cleanup = runtime.AddCleanup(p, releasePortal, core)
	return p
}

// Name returns the server-side name of the portal, empty for the unnamed
// portal.
func (p *Portal) Name() string { return p.core.name }

// Statement returns the parent statement this portal was bound from.
func (p *Portal) Statement() *Statement { return p.core.stmt }

// Clone returns another independent owner of the same server-side portal.
func (p *Portal) Clone() *Portal {
	p.core.refs.Add(1)

	clone := &Portal{core: p.core}
	clone.cleanup = runtime.AddCleanup(clone, releasePortal, p.core)
	return clone
}

// Close releases this owner's reference to the portal, following the same
// merge-into-pending-Sync-or-flush-immediately rule as Statement.Close
//. Once the portal itself is fully released, its reference to the
// parent statement is released too.
func (p *Portal) Close() {
	p.cleanup.Stop()
	releasePortal(p.core)
}

func releasePortal(core *portalCore) {
	if core.refs.Add(-1) > 0 {
		return
	}

	defer core.stmt.Close()

	client := core.client.Value()
	if client == nil {
		return
	}
	client.closeServerObject('P', core.name)
}
