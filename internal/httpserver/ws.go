// internal/httpserver/ws.go
//
// WebSocket command channel: GET /game/ws (session required).
//
// Client → server: the same command objects the HTTP routes build, e.g.
//
//	{"type":"letter","letter":"A"}
//	{"type":"complete"}
//
// Server → client: one reply per command, {"type":..., "data":...} or
// {"type":..., "error":"code"}. A "state" reply is pushed on connect.
//
// Each connection has a single read loop that also does all writes, so no
// write locking is needed.

package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
)

const (
	wsReadLimit = 4 << 10
	wsIdle      = 10 * time.Minute
)

type wsReply struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == s.cfg.ClientOrigin
		},
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	logger := hlog.FromRequest(r).With().Str("gameId", id).Logger()

	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Warn().Err(err).Msg("ws upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	ctx := r.Context()
	if err := conn.WriteJSON(s.wsRun(r, id, command{Type: cmdState})); err != nil {
		return
	}
	logger.Info().Msg("ws connected")

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdle))
		var cmd command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("ws read")
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		if err := conn.WriteJSON(s.wsRun(r, id, cmd)); err != nil {
			logger.Warn().Err(err).Msg("ws write")
			return
		}
	}
}

// wsRun executes cmd and wraps the outcome as a reply.
func (s *Server) wsRun(r *http.Request, id string, cmd command) wsReply {
	out, err := s.execute(r.Context(), id, cmd)
	if err != nil {
		_, code := errorStatus(err)
		return wsReply{Type: cmd.Type, Error: code}
	}
	return wsReply{Type: cmd.Type, Data: out}
}
