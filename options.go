package adquery

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/adquery/internal/directory"
)

const (
	defaultPort    = 389
	defaultTLSPort = 636
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	host string
	port int
	tls  bool

	bindDN       string
	bindPassword string

	dialTimeout   time.Duration
	baseDN        string
	searchTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer

	dialer directory.Dialer
}

// WithServer sets the directory server host and port. Port 0 selects the
// protocol default (389, or 636 with TLS).
func WithServer(host string, port int) Option {
	return optionFunc(func(c *clientConfig) {
		c.host = host
		c.port = port
	})
}

// WithTLS dials over LDAPS instead of plain LDAP.
func WithTLS() Option {
	return optionFunc(func(c *clientConfig) {
		c.tls = true
	})
}

// WithBindCredentials sets the DN and password New uses for the initial
// simple bind.
func WithBindCredentials(dn, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.bindDN = dn
		c.bindPassword = password
	})
}

// WithDialTimeout bounds connection establishment. Zero (the default) omits
// the wire client's dial timeout option entirely, meaning wait indefinitely.
func WithDialTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.dialTimeout = d
	})
}

// WithBaseDN sets the default search base used when a request leaves Base
// empty.
func WithBaseDN(dn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseDN = dn
	})
}

// WithSearchTimeout sets the default server-side time limit for searches.
// Zero (the default) requests no limit.
func WithSearchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchTimeout = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// withDialer overrides the connection dialer; used by tests.
func withDialer(d directory.Dialer) Option {
	return optionFunc(func(c *clientConfig) {
		c.dialer = d
	})
}
