package pgraw

import "github.com/jackc/pgx/v5/pgproto3"

// DescribeTarget names the object a Describe frame reports on: a prepared
// statement or a bound portal. It is a typed replacement for the raw 'S'/'P'
// tag byte the wire protocol uses.
type DescribeTarget interface {
	describeTag() byte
	describeName() string
}

type describeStatement string

func (d describeStatement) describeTag() byte  { return 'S' }
func (d describeStatement) describeName() string { return string(d) }

type describePortal string

func (d describePortal) describeTag() byte  { return 'P' }
func (d describePortal) describeName() string { return string(d) }

// DescribeStatement targets a prepared statement by name.
func DescribeStatement(name string) DescribeTarget { return describeStatement(name) }

// DescribePortal targets a bound portal by name.
func DescribePortal(name string) DescribeTarget { return describePortal(name) }

// Describe appends a Describe frame to the pending buffer. It never
// flushes on its own: the resulting ParameterDescription/RowDescription (or
// NoData) only arrives once the caller calls Sync.
func Describe(client *Client, target DescribeTarget) error {
	return client.rawBuf(func(fe *pgproto3.Frontend) error {
		fe.Send(&pgproto3.Describe{ObjectType: target.describeTag(), Name: target.describeName()})
		return nil
	})
}
