package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/adquery"
)

type mockSearcher struct {
	searchFn func(ctx context.Context, req adquery.SearchRequest) ([]adquery.Entry, error)

	lastReq adquery.SearchRequest
}

func (m *mockSearcher) Search(ctx context.Context, req adquery.SearchRequest) ([]adquery.Entry, error) {
	m.lastReq = req
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, req)
}

func newTestRouter(dir Searcher) http.Handler {
	r := chi.NewRouter()
	NewServer(dir, zap.NewNop()).Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleSearch(t *testing.T) {
	dir := &mockSearcher{
		searchFn: func(_ context.Context, _ adquery.SearchRequest) ([]adquery.Entry, error) {
			return []adquery.Entry{{
				DN: "CN=useraccount,OU=Accounts,DC=example,DC=com",
				Attributes: map[string][][]byte{
					"cn": {[]byte("useraccount")},
				},
			}}, nil
		},
	}
	r := newTestRouter(dir)

	rr := doRequest(t, r, "POST", "/v1/search",
		`{"base":"DC=example,DC=com","field":"cn","value":"useraccount"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(resp.Entries))
	}
	if resp.Entries[0].DN != "CN=useraccount,OU=Accounts,DC=example,DC=com" {
		t.Errorf("dn = %q", resp.Entries[0].DN)
	}
	if got := resp.Entries[0].Attributes["cn"]; len(got) != 1 || got[0] != "useraccount" {
		t.Errorf("cn = %v", got)
	}
	if dir.lastReq.Base != "DC=example,DC=com" {
		t.Errorf("base = %q", dir.lastReq.Base)
	}
}

func TestHandleSearch_Validation(t *testing.T) {
	r := newTestRouter(&mockSearcher{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing field", `{"value":"x"}`},
		{"missing value", `{"field":"cn"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, r, "POST", "/v1/search", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestHandleSearch_DirectoryError(t *testing.T) {
	dir := &mockSearcher{
		searchFn: func(_ context.Context, _ adquery.SearchRequest) ([]adquery.Entry, error) {
			return nil, fmt.Errorf("search DC=x: %w", adquery.ErrSearch)
		},
	}
	r := newTestRouter(dir)

	rr := doRequest(t, r, "POST", "/v1/search", `{"field":"cn","value":"x"}`)
	if rr.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rr.Code)
	}
}

func TestHandleSIDEncode(t *testing.T) {
	r := newTestRouter(&mockSearcher{})

	rr := doRequest(t, r, "GET", "/v1/sid/S-1-5-500-501", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp sidResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Bytes != "0102000000000005f4010000f5010000" {
		t.Fatalf("bytes = %q", resp.Bytes)
	}

	// The returned hex must decode back to the same SID.
	rr2 := doRequest(t, r, "POST", "/v1/sid", `{"bytes":"`+resp.Bytes+`"}`)
	if rr2.Code != http.StatusOK {
		t.Fatalf("decode status = %d, body %s", rr2.Code, rr2.Body.String())
	}
	var resp2 sidResponse
	if err := json.Unmarshal(rr2.Body.Bytes(), &resp2); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp2.SID != "S-1-5-500-501" {
		t.Errorf("round trip SID = %q", resp2.SID)
	}
}

func TestHandleSIDEncode_Invalid(t *testing.T) {
	r := newTestRouter(&mockSearcher{})

	rr := doRequest(t, r, "GET", "/v1/sid/X-1-5-500", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleSIDDecode_Invalid(t *testing.T) {
	r := newTestRouter(&mockSearcher{})

	tests := []struct {
		name string
		body string
	}{
		{"not hex", `{"bytes":"zz"}`},
		{"malformed sid", `{"bytes":"0102"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, r, "POST", "/v1/sid", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	r := newTestRouter(&mockSearcher{})

	rr := doRequest(t, r, "GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}
