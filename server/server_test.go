package server_test

import (
	"testing"
	"time"

	"github.com/meppu/eight/perm"
	"github.com/meppu/eight/proto"
	"github.com/meppu/eight/server"
	"github.com/meppu/eight/storage"
)

func newTestServer() *server.Server {
	s := server.New(storage.NewMemory())
	s.Start()
	return s
}

func TestCallSetThenGet(t *testing.T) {
	s := newTestServer()

	if _, err := s.Call(proto.Set{Key: "hello", Value: "world"}); err != nil {
		t.Fatal(err)
	}

	resp, err := s.Call(proto.Get{Key: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	value, ok := resp.(proto.Value)
	if !ok || value.Value != "world" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCallUnknownKeyReturnsError(t *testing.T) {
	s := newTestServer()

	resp, err := s.Call(proto.Get{Key: "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := resp.(proto.Error); !ok {
		t.Fatalf("expected a proto.Error response, got %T", resp)
	}
}

func TestPermissionGating(t *testing.T) {
	s := newTestServer()
	s.SetPermission(perm.Guest)

	resp, err := s.Call(proto.Set{Key: "a", Value: "1"})
	if err != nil {
		t.Fatal(err)
	}
	errResp, ok := resp.(proto.Error)
	if !ok {
		t.Fatalf("expected a permission error response, got %T", resp)
	}
	if errResp.Err == nil {
		t.Fatal("expected a non-nil underlying error")
	}
}

func TestDowngradePermission(t *testing.T) {
	s := newTestServer()
	s.SetPermission(perm.Owner)

	if _, err := s.Call(proto.DowngradePermission{}); err != nil {
		t.Fatal(err)
	}
	if s.Permission() != perm.Admin {
		t.Fatalf("expected Admin after one downgrade, got %s", s.Permission())
	}

	if _, err := s.Call(proto.DowngradePermission{}); err != nil {
		t.Fatal(err)
	}
	if s.Permission() != perm.Guest {
		t.Fatalf("expected Guest after two downgrades, got %s", s.Permission())
	}

	// Guest stays Guest.
	if _, err := s.Call(proto.DowngradePermission{}); err != nil {
		t.Fatal(err)
	}
	if s.Permission() != perm.Guest {
		t.Fatalf("expected Guest to remain Guest, got %s", s.Permission())
	}
}

func TestCast(t *testing.T) {
	s := newTestServer()

	reply, err := s.Cast(proto.Set{Key: "a", Value: "1"})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case resp := <-reply:
		if _, ok := resp.(proto.Ok); !ok {
			t.Fatalf("expected proto.Ok, got %T", resp)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cast reply")
	}
}

func TestCallInTimesOutWhenQueueNeverStarted(t *testing.T) {
	s := server.New(storage.NewMemory())
	// Deliberately do not call Start(): nothing drains the queue, so
	// CallIn must observe its timeout rather than block forever.

	_, err := s.CallIn(proto.Get{Key: "a"}, 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestQueryRunsScriptAgainstServer(t *testing.T) {
	s := newTestServer()

	results, err := s.Query(`set a 1; get a`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	value, ok := results[1].(proto.Value)
	if !ok || value.Value != "1" {
		t.Fatalf("unexpected second result: %+v", results[1])
	}
}

func TestQueryParseErrorReturnsNoResults(t *testing.T) {
	s := newTestServer()

	results, err := s.Query(`get a; bogus command`, nil)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}
