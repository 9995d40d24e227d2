// Package ldap adapts go-ldap/ldap to the directory boundary interfaces.
package ldap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/kailas-cloud/adquery/internal/directory"
)

// Dialer opens go-ldap connections.
type Dialer struct {
	// TLSConfig overrides the default TLS configuration for ldaps dials.
	TLSConfig *tls.Config
}

// Dial connects to the directory server. The dial timeout option is only
// set when cfg.Timeout is positive; go-ldap treats an absent option as
// "wait indefinitely", which is not the same as a zero timeout.
func (d Dialer) Dial(cfg directory.DialConfig) (directory.Conn, error) {
	var opts []goldap.DialOpt
	if cfg.Timeout > 0 {
		opts = append(opts, goldap.DialWithDialer(&net.Dialer{Timeout: cfg.Timeout}))
	}
	if cfg.TLS {
		tc := d.TLSConfig
		if tc == nil {
			tc = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
		}
		opts = append(opts, goldap.DialWithTLSConfig(tc))
	}

	c, err := goldap.DialURL(serverURL(cfg.Host, cfg.Port, cfg.TLS), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", directory.ErrConnection, err)
	}
	return &conn{ldap: c}, nil
}

// serverURL builds the ldap:// or ldaps:// URL for DialURL.
func serverURL(host string, port int, useTLS bool) string {
	scheme := "ldap"
	if useTLS {
		scheme = "ldaps"
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// conn wraps a live *goldap.Conn behind directory.Conn.
type conn struct {
	ldap *goldap.Conn
}

func (c *conn) Bind(dn, password string) error {
	if err := c.ldap.Bind(dn, password); err != nil {
		if goldap.IsErrorWithCode(err, goldap.LDAPResultInvalidCredentials) {
			return fmt.Errorf("%w: %v", directory.ErrInvalidCredentials, err)
		}
		return fmt.Errorf("%w: %v", directory.ErrConnection, err)
	}
	return nil
}

func (c *conn) Search(ctx context.Context, req directory.SearchRequest) (*directory.SearchResult, error) {
	// go-ldap searches are blocking and not cancelable mid-flight; honor an
	// already-expired context before touching the wire.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", directory.ErrSearch, err)
	}

	sr := goldap.NewSearchRequest(
		req.BaseDN,
		goldap.ScopeWholeSubtree,
		goldap.NeverDerefAliases,
		0, timeLimitSeconds(req.Timeout), false,
		req.Filter,
		nil, nil,
	)
	res, err := c.ldap.Search(sr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", directory.ErrSearch, err)
	}

	out := &directory.SearchResult{Entries: make([]directory.Entry, len(res.Entries))}
	for i, e := range res.Entries {
		attrs := make([]directory.Attribute, len(e.Attributes))
		for j, a := range e.Attributes {
			vals := make([][]byte, len(a.ByteValues))
			for k, v := range a.ByteValues {
				vals[k] = append([]byte(nil), v...)
			}
			attrs[j] = directory.Attribute{Name: a.Name, Values: vals}
		}
		out.Entries[i] = directory.Entry{DN: e.DN, Attributes: attrs}
	}
	return out, nil
}

func (c *conn) Close() error {
	return c.ldap.Close()
}

// timeLimitSeconds converts a timeout to the LDAP time-limit field. Zero
// stays zero (the protocol's "no limit"); sub-second timeouts round up so a
// small positive timeout is not silently dropped.
func timeLimitSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
