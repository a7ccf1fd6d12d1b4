// internal/httpserver/routes_game.go
//
// Game routes. Every command goes through execute(), which the WebSocket
// channel shares, so both transports behave identically.
//
//   - POST   /game/new         → start a game (optionally the daily one), issue a session
//   - GET    /game             → current state
//   - POST   /game/letter      → submit one letter
//   - POST   /game/complete    → credit the spelled word
//   - POST   /game/next        → draw the next word once the current one is credited
//   - POST   /game/reset-word  → clear progress on the current word
//   - POST   /game/restart     → start over with the same session
//   - GET    /game/summary     → end-of-game report
//   - DELETE /game             → drop the session

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fingerspell/internal/daily"
	"github.com/robalobadob/fingerspell/internal/events"
	"github.com/robalobadob/fingerspell/internal/game"
	"github.com/robalobadob/fingerspell/internal/store"
	"github.com/robalobadob/fingerspell/internal/words"
)

// Command types accepted by execute.
const (
	cmdState     = "state"
	cmdLetter    = "letter"
	cmdComplete  = "complete"
	cmdNext      = "next"
	cmdResetWord = "reset_word"
	cmdRestart   = "restart"
	cmdSummary   = "summary"
)

// Feedback lines shown by the client after a command.
const (
	feedbackCorrect   = "Correto! ✓"
	feedbackWrong     = "Ops! Tente outra letra"
	feedbackResetWord = "Palavra reiniciada"
)

var (
	errBadLetter      = errors.New("invalid letter")
	errUnknownCommand = errors.New("unknown command")
)

// command is one client instruction.
type command struct {
	Type   string `json:"type"`
	Letter string `json:"letter,omitempty"`
}

type stateRes struct {
	State    game.Snapshot `json:"state"`
	Feedback string        `json:"feedback,omitempty"`
}

type letterRes struct {
	Accepted     bool          `json:"accepted"`
	Feedback     string        `json:"feedback"`
	WordComplete bool          `json:"wordComplete"`
	State        game.Snapshot `json:"state"`
}

type completeRes struct {
	Result game.CompletionResult `json:"result"`
	State  game.Snapshot         `json:"state"`
}

// mountGame registers /game routes. Everything except /game/new needs a
// session; everything except the WebSocket is bounded by the request timeout.
func (s *Server) mountGame(r chi.Router) {
	timeout := chimw.Timeout(requestTimeout)

	r.With(timeout).Post("/new", s.handleNewGame)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession())
		r.Get("/ws", s.handleWS)

		r.Group(func(r chi.Router) {
			r.Use(timeout)
			r.Get("/", s.commandHandler(cmdState))
			r.Delete("/", s.handleEndGame)
			r.Post("/letter", s.handleLetter)
			r.Post("/complete", s.commandHandler(cmdComplete))
			r.Post("/next", s.commandHandler(cmdNext))
			r.Post("/reset-word", s.commandHandler(cmdResetWord))
			r.Post("/restart", s.commandHandler(cmdRestart))
			r.Get("/summary", s.commandHandler(cmdSummary))
		})
	})
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Daily bool `json:"daily"` // same word sequence for everyone today
}
type newGameRes struct {
	GameID string        `json:"gameId"`
	Token  string        `json:"token"`
	Daily  bool          `json:"daily"`
	Date   string        `json:"date,omitempty"`
	State  game.Snapshot `json:"state"`
}

// handleNewGame creates a game, selects its first word, stores it and
// issues a session token (body + cookie).
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means a regular game

	var opts []game.Option
	var date string
	if req.Daily {
		now := s.now()
		date = daily.DateKey(now)
		opts = append(opts, game.WithSeed(daily.Seed(now, s.cfg.DailySalt)))
	}

	g, err := game.New(s.bank, opts...)
	if err != nil {
		log.Error().Err(err).Msg("new game")
		http.Error(w, `{"error":"bad_word_bank"}`, http.StatusInternalServerError)
		return
	}
	if err := g.Reset(); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signSession(g.ID)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, tok, exp)

	log.Info().Str("gameId", g.ID).Bool("daily", req.Daily).Msg("game started")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID: g.ID, Token: tok, Daily: req.Daily, Date: date, State: g.Snapshot(),
	})
}

// handleEndGame drops the session's game and clears the cookie.
func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	_ = s.store.Delete(r.Context(), gameID(r))
	s.clearSessionCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLetter decodes {"letter":"A"} and runs the letter command.
func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var cmd command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	cmd.Type = cmdLetter
	s.respond(w, r, cmd)
}

// commandHandler serves a body-less command.
func (s *Server) commandHandler(typ string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, command{Type: typ})
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, cmd command) {
	out, err := s.execute(r.Context(), gameID(r), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// execute runs cmd against the game with exclusive access and returns the
// response payload. Completion events are published after the game is
// released.
func (s *Server) execute(ctx context.Context, id string, cmd command) (any, error) {
	var (
		out any
		evs []events.Event
	)
	err := s.store.Update(ctx, id, func(g *game.Game) error {
		switch cmd.Type {
		case cmdState:
			out = stateRes{State: g.Snapshot()}

		case cmdLetter:
			letter, ok := words.Normalize(cmd.Letter)
			if !ok {
				return errBadLetter
			}
			accepted := g.CheckLetter(letter)
			fb := feedbackWrong
			if accepted {
				fb = feedbackCorrect
			}
			out = letterRes{Accepted: accepted, Feedback: fb, WordComplete: g.WordComplete(), State: g.Snapshot()}

		case cmdComplete:
			res, err := g.CompleteWord()
			if err != nil {
				return err
			}
			evs = append(evs, events.Event{
				Kind: events.WordCompleted, GameID: g.ID, Word: res.Word,
				Difficulty: res.Difficulty.String(), Attempts: res.AttemptsUsed,
				Points: res.PointsAwarded, Score: res.Score,
			})
			if res.GameOver {
				ev := events.Event{Kind: events.GameFinished, GameID: g.ID, Score: res.Score}
				if sum, err := g.Summary(); err == nil {
					ev.Accuracy = sum.AccuracyPercent
				}
				evs = append(evs, ev)
			}
			out = completeRes{Result: res, State: g.Snapshot()}

		case cmdNext:
			if g.Phase() == game.PhasePlaying && !g.WordCredited() {
				return game.ErrWordIncomplete
			}
			if err := g.SelectRandomWord(); err != nil {
				return err
			}
			out = stateRes{State: g.Snapshot()}

		case cmdResetWord:
			g.ResetCurrentWord()
			out = stateRes{State: g.Snapshot(), Feedback: feedbackResetWord}

		case cmdRestart:
			if err := g.Reset(); err != nil {
				return err
			}
			out = stateRes{State: g.Snapshot()}

		case cmdSummary:
			sum, err := g.Summary()
			if err != nil {
				return err
			}
			out = sum

		default:
			return errUnknownCommand
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ev := range evs {
		if err := s.events.Publish(ctx, ev); err != nil {
			log.Warn().Err(err).Str("gameId", ev.GameID).Str("kind", string(ev.Kind)).Msg("publish event")
		}
	}
	return out, nil
}

// errorStatus maps command errors to an HTTP status and a short code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "game_not_found"
	case errors.Is(err, errBadLetter):
		return http.StatusBadRequest, "invalid_letter"
	case errors.Is(err, errUnknownCommand):
		return http.StatusBadRequest, "unknown_command"
	case errors.Is(err, game.ErrWordIncomplete):
		return http.StatusConflict, "word_incomplete"
	case errors.Is(err, game.ErrGameFinished):
		return http.StatusConflict, "game_finished"
	case errors.Is(err, game.ErrExhaustedWordBank):
		return http.StatusConflict, "word_bank_exhausted"
	case errors.Is(err, game.ErrNoAttempts):
		return http.StatusConflict, "no_attempts"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("command failed")
	}
	http.Error(w, `{"error":"`+code+`"}`, status)
}
