package gateway

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Option configures the gateway router at construction time.
type Option func(*options)

type options struct {
	redirectTo string
}

// WithCatchAllRedirect makes every unmatched route issue an HTTP 301 to
// target, per the boundary contract's optional catch-all redirect.
func WithCatchAllRedirect(target string) Option {
	return func(o *options) { o.redirectTo = target }
}

// NewRouter builds the gateway's HTTP handler: POST /query for
// request/response RPC, GET /rpc for the WebSocket multiplexed form.
func NewRouter(database Querier, opts ...Option) http.Handler {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	router := mux.NewRouter()
	router.Handle("/query", handleQuery(database)).Methods(http.MethodPost)
	router.Handle("/rpc", handleSocket(database)).Methods(http.MethodGet)

	if o.redirectTo != "" {
		router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, o.redirectTo, http.StatusMovedPermanently)
		})
	}

	return router
}
