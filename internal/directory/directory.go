// Package directory defines the boundary to the external directory-protocol
// client. The rest of the module talks to these interfaces only; the go-ldap
// adapter lives in the ldap subpackage, tests substitute their own Conn.
package directory

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for external client failures. Adapters wrap the client's
// own message alongside these so it reaches the caller unmodified.
var (
	// ErrConnection signals a transport or handshake failure.
	ErrConnection = errors.New("directory connection failed")
	// ErrInvalidCredentials signals a rejected bind.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSearch signals a search the server reported as failed.
	ErrSearch = errors.New("directory search failed")
)

// DialConfig carries connection parameters for a Dialer. A zero Timeout
// means the dial timeout option is omitted entirely rather than passed as
// zero; "wait indefinitely" and "wait zero time" are different things to the
// wire client.
type DialConfig struct {
	Host    string
	Port    int
	TLS     bool
	Timeout time.Duration
}

// SearchRequest is a whole-subtree search below a base DN. Filter is the
// rendered RFC 4515 predicate. A zero Timeout requests no server-side time
// limit.
type SearchRequest struct {
	BaseDN  string
	Filter  string
	Timeout time.Duration
}

// Attribute is one attribute of a raw record, values in server order.
// Values are byte strings; no charset is assumed.
type Attribute struct {
	Name   string
	Values [][]byte
}

// Entry is one raw search record as returned by the wire client.
type Entry struct {
	DN         string
	Attributes []Attribute
}

// SearchResult holds raw entries in server order, never re-sorted.
type SearchResult struct {
	Entries []Entry
}

// Conn is an open connection to a directory server. A Conn is not safe for
// concurrent use unless the underlying client documents otherwise.
type Conn interface {
	Bind(dn, password string) error
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
	Close() error
}

// Dialer opens connections. The production implementation is ldap.Dialer.
type Dialer interface {
	Dial(cfg DialConfig) (Conn, error)
}
