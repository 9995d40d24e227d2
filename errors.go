package adquery

import (
	"errors"

	"github.com/kailas-cloud/adquery/internal/directory"
)

// Sentinel errors re-exported from the directory boundary.
// Use errors.Is() to check; the wire client's own message is always wrapped
// alongside them.
var (
	ErrConnection         = directory.ErrConnection
	ErrInvalidCredentials = directory.ErrInvalidCredentials
	ErrSearch             = directory.ErrSearch
)

var (
	// ErrSessionClosed signals use of a client after Close.
	ErrSessionClosed = errors.New("session is closed")
	// ErrMalformedSID signals a binary SID that violates the wire format.
	ErrMalformedSID = errors.New("malformed binary SID")
	// ErrInvalidSIDString signals a textual SID outside the S-R-A-S... grammar.
	ErrInvalidSIDString = errors.New("invalid SID string")
	// ErrSubAuthorityOverflow signals a sub-authority that does not fit in 32 bits.
	ErrSubAuthorityOverflow = errors.New("sub-authority out of range")
)
