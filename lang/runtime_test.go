package lang_test

import (
	"errors"
	"testing"

	"github.com/meppu/eight/lang"
	"github.com/meppu/eight/proto"
)

// fakeDispatcher is a minimal lang.Dispatcher for exercising the runtime
// without a real *server.Server.
type fakeDispatcher struct {
	calls    []proto.Request
	casts    []proto.Request
	callErr  error
	castErr  error
	failAt   int // zero-based call index to fail at, -1 disables
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{failAt: -1}
}

func (f *fakeDispatcher) Call(request proto.Request) (proto.Response, error) {
	if f.callErr != nil && len(f.calls) == f.failAt {
		f.calls = append(f.calls, request)
		return nil, f.callErr
	}
	f.calls = append(f.calls, request)
	return proto.Ok{}, nil
}

func (f *fakeDispatcher) Cast(request proto.Request) (<-chan proto.Response, error) {
	f.casts = append(f.casts, request)
	if f.castErr != nil {
		return nil, f.castErr
	}
	ch := make(chan proto.Response, 1)
	ch <- proto.Ok{}
	return ch, nil
}

func TestRunExecutesEachStatementInOrder(t *testing.T) {
	d := newFakeDispatcher()

	results, err := lang.Run(d, `set a 1; get a; exists a`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if len(d.calls) != 3 {
		t.Fatalf("expected 3 dispatched calls, got %d", len(d.calls))
	}
	if _, ok := d.calls[0].(proto.Set); !ok {
		t.Fatalf("expected first call to be Set, got %T", d.calls[0])
	}
}

func TestRunSpawnStatementsDoNotContributeResults(t *testing.T) {
	d := newFakeDispatcher()

	results, err := lang.Run(d, `set? a 1; get a`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result (the await), got %d", len(results))
	}
	if len(d.casts) != 1 {
		t.Fatalf("expected 1 cast, got %d", len(d.casts))
	}
	if len(d.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(d.calls))
	}
}

func TestRunParseErrorDiscardsPriorResults(t *testing.T) {
	d := newFakeDispatcher()

	results, err := lang.Run(d, `get a; frobnicate b`, nil)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if results != nil {
		t.Fatalf("expected nil results on error, got %v", results)
	}
}

func TestRunCallErrorDiscardsPriorResults(t *testing.T) {
	d := newFakeDispatcher()
	d.callErr = errors.New("boom")
	d.failAt = 1

	results, err := lang.Run(d, `get a; get b; get c`, nil)
	if err == nil {
		t.Fatal("expected a call error")
	}
	if results != nil {
		t.Fatalf("expected nil results on error, got %v", results)
	}
	if len(d.calls) != 2 {
		t.Fatalf("expected the runtime to stop after the failing call, got %d calls", len(d.calls))
	}
}

func TestRunEnvSubstitutionAppliesAcrossStatements(t *testing.T) {
	d := newFakeDispatcher()

	_, err := lang.Run(d, `set $key 1`, map[string]string{"key": "resolved"})
	if err != nil {
		t.Fatal(err)
	}

	set, ok := d.calls[0].(proto.Set)
	if !ok || set.Key != "resolved" {
		t.Fatalf("expected env-substituted key, got %+v", d.calls[0])
	}
}
