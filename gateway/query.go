// Package gateway exposes a *server.Server over HTTP and WebSocket using
// net/http, gorilla/mux, and gorilla/websocket.
package gateway

import "github.com/meppu/eight/proto"

// Request is the query envelope accepted by both transports.
type Request struct {
	ID    string            `json:"id,omitempty"`
	Query string            `json:"query"`
	Vars  map[string]string `json:"vars"`
}

// Response is the query envelope both transports reply with. Results is
// marshaled manually (see marshal.go) since proto.Response has no single
// concrete JSON shape of its own.
type Response struct {
	ID      string           `json:"id,omitempty"`
	Results []proto.Response `json:"-"`
}
