package adquery

import (
	"context"
	"testing"

	"github.com/kailas-cloud/adquery/internal/directory"
)

// --- directory.Conn mock ---

type mockConn struct {
	bindFn   func(dn, password string) error
	searchFn func(ctx context.Context, req directory.SearchRequest) (*directory.SearchResult, error)
	closeFn  func() error

	closeCalls int
}

func (m *mockConn) Bind(dn, password string) error {
	if m.bindFn == nil {
		return nil
	}
	return m.bindFn(dn, password)
}

func (m *mockConn) Search(ctx context.Context, req directory.SearchRequest) (*directory.SearchResult, error) {
	if m.searchFn == nil {
		return &directory.SearchResult{}, nil
	}
	return m.searchFn(ctx, req)
}

func (m *mockConn) Close() error {
	m.closeCalls++
	if m.closeFn == nil {
		return nil
	}
	return m.closeFn()
}

// --- directory.Dialer mock ---

type mockDialer struct {
	conn    *mockConn
	dialErr error

	lastCfg directory.DialConfig
	calls   int
}

func (m *mockDialer) Dial(cfg directory.DialConfig) (directory.Conn, error) {
	m.calls++
	m.lastCfg = cfg
	if m.dialErr != nil {
		return nil, m.dialErr
	}
	if m.conn == nil {
		m.conn = &mockConn{}
	}
	return m.conn, nil
}

// newTestClient opens a client backed by the given mock connection.
func newTestClient(t *testing.T, conn *mockConn, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithServer("dc1.example.com", 389),
		withDialer(&mockDialer{conn: conn}),
	}, opts...)
	c, err := Open(opts...)
	if err != nil {
		t.Fatalf("unexpected error opening test client: %v", err)
	}
	return c
}
