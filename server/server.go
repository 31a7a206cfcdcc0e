// Package server implements the permission-gated request dispatcher that
// turns a storage.Storage into a concurrent, queryable service. Requests
// queue onto an unbounded internal channel and are executed one goroutine
// per request, replying over a one-shot response channel.
package server

import (
	"context"
	"sync"
	"time"

	logging "github.com/ipfs/go-log"
	"github.com/meppu/eight/errs"
	"github.com/meppu/eight/lang"
	"github.com/meppu/eight/perm"
	"github.com/meppu/eight/proto"
	"github.com/meppu/eight/storage"
)

var log = logging.Logger("eight/server")

// job pairs a request with the one-shot channel its response is
// delivered on, mirroring the Rust ServerRequest{sender, request} pair.
type job struct {
	request proto.Request
	reply   chan proto.Response
}

// Server dispatches requests against a storage.Storage under a
// permission policy. The zero value is not usable; construct with New.
// A Server is safe for concurrent use and cheap to copy by reference —
// callers typically share a single *Server across goroutines rather than
// cloning it, since (unlike the Rust Server) Go has no implicit Arc
// cloning semantics to lean on.
type Server struct {
	store storage.Storage

	permMu sync.RWMutex
	perm   perm.Permission

	queue *unboundedQueue
}

// New constructs a Server backed by store, with the default Owner
// permission tier.
func New(store storage.Storage) *Server {
	return &Server{
		store: store,
		perm:  perm.Owner,
		queue: newUnboundedQueue(),
	}
}

// SetPermission changes the server's permission tier. Not gated by the
// current tier: any holder of a *Server may call it, matching the
// original implementation's unrestricted behavior.
func (s *Server) SetPermission(p perm.Permission) {
	s.permMu.Lock()
	defer s.permMu.Unlock()
	s.perm = p
}

// Permission returns the server's current permission tier.
func (s *Server) Permission() perm.Permission {
	s.permMu.RLock()
	defer s.permMu.RUnlock()
	return s.perm
}

// Start runs Listen in a background goroutine. Not idempotent — callers
// should invoke it exactly once per Server.
func (s *Server) Start() {
	go s.Listen()
}

// Listen blocks, dequeuing one job at a time and spawning an independent
// goroutine to execute each, matching the original's per-request
// tokio::spawn.
func (s *Server) Listen() {
	for j := range s.queue.Jobs() {
		go s.execute(j)
	}
}

func (s *Server) execute(j job) {
	s.permMu.RLock()
	current := s.perm
	s.permMu.RUnlock()

	if err := current.Check(j.request); err != nil {
		j.reply <- proto.Error{Err: err.(*errs.Error)}
		return
	}

	j.reply <- s.run(j.request)
}

// run performs the storage operation for request and converts its result
// into a Response, mirroring executor.rs's match-and-convert shape.
func (s *Server) run(request proto.Request) proto.Response {
	ctx := context.Background()

	switch req := request.(type) {
	case proto.Set:
		if err := s.store.Set(ctx, req.Key, req.Value); err != nil {
			return asError(err)
		}
		return proto.Ok{}

	case proto.Get:
		value, err := s.store.Get(ctx, req.Key)
		if err != nil {
			return asError(err)
		}
		return proto.Value{Value: value}

	case proto.Delete:
		if err := s.store.Delete(ctx, req.Key); err != nil {
			return asError(err)
		}
		return proto.Ok{}

	case proto.Exists:
		ok, err := s.store.Exists(ctx, req.Key)
		if err != nil {
			return asError(err)
		}
		return proto.Bool{Value: ok}

	case proto.Increment:
		value, err := s.store.Increment(ctx, req.Key, req.N)
		if err != nil {
			return asError(err)
		}
		return proto.UInt{Value: value}

	case proto.Decrement:
		value, err := s.store.Decrement(ctx, req.Key, req.N)
		if err != nil {
			return asError(err)
		}
		return proto.UInt{Value: value}

	case proto.Search:
		keys, err := s.store.Search(ctx, req.Prefix)
		if err != nil {
			return asError(err)
		}
		return proto.Keys{Keys: keys}

	case proto.Flush:
		if err := s.store.Flush(ctx); err != nil {
			return asError(err)
		}
		return proto.Ok{}

	case proto.DowngradePermission:
		s.permMu.Lock()
		s.perm = s.perm.Lower()
		s.permMu.Unlock()
		return proto.Ok{}

	default:
		return asError(errs.New(errs.CommandNotFound))
	}
}

func asError(err error) proto.Response {
	e, ok := err.(*errs.Error)
	if !ok {
		log.Warnf("non-*errs.Error surfaced from storage: %v", err)
		e = errs.New(errs.RecvFail)
	}
	return proto.Error{Err: e}
}

// Cast enqueues request with a fresh reply channel and returns
// immediately, without waiting for the response.
func (s *Server) Cast(request proto.Request) (<-chan proto.Response, error) {
	reply := make(chan proto.Response, 1)
	s.queue.Push(job{request: request, reply: reply})
	return reply, nil
}

// Call sends request and blocks for its response.
func (s *Server) Call(request proto.Request) (proto.Response, error) {
	reply, err := s.Cast(request)
	if err != nil {
		return nil, err
	}
	return <-reply, nil
}

// Query runs source against env, delegating to the lang package's
// runtime. It returns the ordered responses of every Await statement, or
// the first parse/transport error encountered.
func (s *Server) Query(source string, env map[string]string) ([]proto.Response, error) {
	return lang.Run(s, source, env)
}

// CallIn is Call with a timeout. Cancellation does not revoke an
// in-flight executor — the command still completes and its reply is
// simply discarded.
func (s *Server) CallIn(request proto.Request, timeout time.Duration) (proto.Response, error) {
	reply, err := s.Cast(request)
	if err != nil {
		return nil, err
	}

	select {
	case resp := <-reply:
		return resp, nil
	case <-time.After(timeout):
		return nil, errs.New(errs.RecvTimeout)
	}
}
