package gateway_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meppu/eight/gateway"
	"github.com/meppu/eight/proto"
)

// fakeQuerier is a minimal gateway.Querier for exercising the HTTP and
// WebSocket handlers without a real *server.Server.
type fakeQuerier struct {
	results []proto.Response
	err     error
}

func (f *fakeQuerier) Query(source string, env map[string]string) ([]proto.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestHandleQuerySuccess(t *testing.T) {
	q := &fakeQuerier{results: []proto.Response{proto.Value{Value: "ok"}}}
	router := gateway.NewRouter(q)

	body, _ := json.Marshal(gateway.Request{ID: "1", Query: "get a"})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var decoded struct {
		ID      string            `json:"id"`
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ID != "1" || len(decoded.Results) != 1 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleQueryMalformedBody(t *testing.T) {
	q := &fakeQuerier{}
	router := gateway.NewRouter(q)

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleQueryDispatcherError(t *testing.T) {
	q := &fakeQuerier{err: errAlways{}}
	router := gateway.NewRouter(q)

	body, _ := json.Marshal(gateway.Request{Query: "bogus"})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCatchAllRedirect(t *testing.T) {
	q := &fakeQuerier{}
	router := gateway.NewRouter(q, gateway.WithCatchAllRedirect("https://example.test/"))

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMovedPermanently)
	}
	if loc := rec.Header().Get("Location"); loc != "https://example.test/" {
		t.Fatalf("Location = %q", loc)
	}
}

type errAlways struct{}

func (errAlways) Error() string { return "always fails" }
