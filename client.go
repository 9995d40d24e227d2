package adquery

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/kailas-cloud/adquery/internal/directory"
	ldapdir "github.com/kailas-cloud/adquery/internal/directory/ldap"
)

// Client is a session with a directory server: created by Open or New,
// promoted to authenticated by Bind, invalidated by Close. A Client is owned
// by the caller that obtained it and must not be shared by concurrent
// callers unless the underlying wire client allows it.
type Client struct {
	conn directory.Conn
	obs  *observer

	baseDN        string
	searchTimeout time.Duration

	closed atomic.Bool
}

// Open connects to the directory server without authenticating. Most
// callers want New, which also binds.
func Open(opts ...Option) (*Client, error) {
	return open(applyOptions(opts))
}

// New connects to the directory server and binds with the configured
// credentials. An open failure passes through unchanged; when the bind is
// rejected the fresh connection is closed and the bind error returned, so
// neither a session nor a dangling socket outlives the failure.
func New(opts ...Option) (*Client, error) {
	cfg := applyOptions(opts)
	c, err := open(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Bind(cfg.bindDN, cfg.bindPassword); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func applyOptions(opts []Option) *clientConfig {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	return cfg
}

func open(cfg *clientConfig) (*Client, error) {
	if cfg.host == "" {
		return nil, errors.New("adquery: server host required (use WithServer)")
	}
	port := cfg.port
	if port == 0 {
		port = defaultPort
		if cfg.tls {
			port = defaultTLSPort
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	dialer := cfg.dialer
	if dialer == nil {
		dialer = ldapdir.Dialer{}
	}
	conn, err := dialer.Dial(directory.DialConfig{
		Host:    cfg.host,
		Port:    port,
		TLS:     cfg.tls,
		Timeout: cfg.dialTimeout,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:          conn,
		obs:           obs,
		baseDN:        cfg.baseDN,
		searchTimeout: cfg.searchTimeout,
	}, nil
}

// Bind authenticates the session with a simple bind. Any non-success
// response surfaces the wire client's message on the returned error.
func (c *Client) Bind(dn, password string) error {
	if c.closed.Load() {
		return ErrSessionClosed
	}
	start := time.Now()
	err := c.conn.Bind(dn, password)
	c.obs.observe("bind", start, err)
	if err != nil {
		return fmt.Errorf("bind %s: %w", dn, err)
	}
	return nil
}

// Close tears down the connection. Further operations on the client return
// ErrSessionClosed; a second Close is a no-op.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.conn.Close()
}
