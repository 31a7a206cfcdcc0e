package gateway

import (
	"encoding/json"
	"net/http"

	logging "github.com/ipfs/go-log"
	"github.com/meppu/eight/errs"
	"github.com/meppu/eight/proto"
)

var log = logging.Logger("eight/gateway")

// Querier is the subset of *server.Server the gateway needs. Declaring
// it locally avoids a hard dependency on the server package's full API
// and lets the gateway be tested against a fake.
type Querier interface {
	Query(source string, env map[string]string) ([]proto.Response, error)
}

// handleQuery implements POST /query: read a Request, run it, write a
// Response. Grounded on eight-serve/src/http.rs's run_query handler.
func handleQuery(database Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload Request
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, Response{
				Results: []proto.Response{proto.Error{Err: errs.NewCommandError("malformed request body", 0, 0)}},
			})
			return
		}

		results, err := database.Query(payload.Query, payload.Vars)
		if err != nil {
			log.Debugf("query %q failed: %v", payload.ID, err)
			e, ok := err.(*errs.Error)
			if !ok {
				e = errs.New(errs.RecvFail)
			}
			writeJSON(w, http.StatusBadRequest, Response{
				ID:      payload.ID,
				Results: []proto.Response{proto.Error{Err: e}},
			})
			return
		}

		writeJSON(w, http.StatusOK, Response{ID: payload.ID, Results: results})
	}
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed writing response: %v", err)
	}
}
