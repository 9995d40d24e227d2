package adquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/adquery/internal/directory"
)

// SearchRequest describes one whole-subtree search. Base and Timeout fall
// back to the client's configured defaults when left zero; a zero timeout
// after defaulting means no server-side time limit.
type SearchRequest struct {
	Base    string
	Filter  Filter
	Timeout time.Duration
}

// Search executes the request and maps the raw records into entries,
// attribute names and values copied verbatim in server order. Failures from
// the wire client are surfaced with their message intact and never retried.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Entry, error) {
	if c.closed.Load() {
		return nil, ErrSessionClosed
	}
	if req.Filter == nil {
		return nil, errors.New("adquery: search filter required")
	}
	base := req.Base
	if base == "" {
		base = c.baseDN
	}
	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.searchTimeout
	}

	start := time.Now()
	raw, err := c.conn.Search(ctx, directory.SearchRequest{
		BaseDN:  base,
		Filter:  renderedFilter(req.Filter),
		Timeout: timeout,
	})
	c.obs.observe("search", start, err)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", base, err)
	}
	return entriesFromRaw(raw.Entries), nil
}

// SearchByField searches for entries whose field equals value. Pure
// filter-construction sugar over Search.
func (c *Client) SearchByField(ctx context.Context, base, field, value string) ([]Entry, error) {
	return c.Search(ctx, SearchRequest{Base: base, Filter: Equality(field, value)})
}

// SearchBySubstring searches for entries whose field contains fragment
// anywhere in the value. Build a Substring filter directly for initial or
// final anchoring.
func (c *Client) SearchBySubstring(ctx context.Context, base, field, fragment string) ([]Entry, error) {
	return c.Search(ctx, SearchRequest{Base: base, Filter: Substring(field, Any(fragment))})
}

func entriesFromRaw(raw []directory.Entry) []Entry {
	out := make([]Entry, len(raw))
	for i, re := range raw {
		attrs := make(map[string][][]byte, len(re.Attributes))
		for _, a := range re.Attributes {
			attrs[a.Name] = a.Values
		}
		out[i] = Entry{DN: re.DN, Attributes: attrs}
	}
	return out
}
