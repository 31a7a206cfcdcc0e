package gateway

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/meppu/eight/errs"
	"github.com/meppu/eight/proto"
)

// asQueryError recovers the *errs.Error carried by a lang.Run error, or
// falls back to RecvFail for the unexpected case of a non-*errs.Error.
func asQueryError(err error) *errs.Error {
	if e, ok := err.(*errs.Error); ok {
		return e
	}
	return errs.New(errs.RecvFail)
}

// upgrader accepts connections from any origin: authentication here is
// limited to the fixed permission tier the server was constructed with.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// parseFailureMessage is sent verbatim when an inbound text frame does
// not decode as a Request, matching
// eight-serve/src/websocket.rs's literal `{"error": "Parsing request
// failed"}` reply.
const parseFailureMessage = `{"error": "Parsing request failed"}`

// handleSocket implements GET /rpc: upgrade, send an advisory ping,
// then read text frames in a loop, processing each on its own goroutine.
// Grounded on eight-serve/src/websocket.rs's receive_spawner/
// execute_loop/message_process split.
func handleSocket(database Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debugf("websocket upgrade failed: %v", err)
			return
		}

		connID := uuid.NewString()
		log.Debugf("websocket connection %s opened", connID)

		var writeMu sync.Mutex
		if err := conn.WriteMessage(websocket.PingMessage, []byte{9, 6}); err != nil {
			conn.Close()
			return
		}

		receiveLoop(connID, database, conn, &writeMu)
	}
}

func receiveLoop(connID string, database Querier, conn *websocket.Conn, writeMu *sync.Mutex) {
	defer conn.Close()

	for {
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			log.Debugf("websocket connection %s closed: %v", connID, err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		go processMessage(connID, database, conn, writeMu, raw)
	}
}

func processMessage(connID string, database Querier, conn *websocket.Conn, writeMu *sync.Mutex, raw []byte) {
	var payload Request
	if err := json.Unmarshal(raw, &payload); err != nil {
		writeText(conn, writeMu, []byte(parseFailureMessage))
		return
	}

	msgID := uuid.NewString()
	log.Debugf("websocket connection %s processing message %s", connID, msgID)

	results, err := database.Query(payload.Query, payload.Vars)

	var response Response
	if err != nil {
		log.Debugf("websocket connection %s message %s query failed: %v", connID, msgID, err)
		response = Response{ID: payload.ID, Results: []proto.Response{proto.Error{Err: asQueryError(err)}}}
	} else {
		response = Response{ID: payload.ID, Results: results}
	}

	body, err := json.Marshal(response)
	if err != nil {
		log.Errorf("failed marshaling websocket response: %v", err)
		return
	}

	writeText(conn, writeMu, body)
}

func writeText(conn *websocket.Conn, writeMu *sync.Mutex, body []byte) {
	writeMu.Lock()
	defer writeMu.Unlock()
	conn.WriteMessage(websocket.TextMessage, body)
}
