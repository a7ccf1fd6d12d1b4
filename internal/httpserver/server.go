// internal/httpserver/server.go
//
// HTTP server wiring for the finger-spelling backend.
// Responsibilities:
//   - Router + middleware (request IDs, zerolog access log, panic recovery,
//     timeouts, JSON content type, CORS).
//   - Public endpoints: "/", "/health", "/levels", "/keyboard", "/letters/{letter}".
//   - Game endpoints (session token required): mounted under /game
//     (routes_game.go), including the WebSocket channel (ws.go).
//
// Notes:
//   - The session token is an HS256 JWT carrying the game ID (session.go).
//   - CORS is origin-aware and credentials-enabled so the session cookie works.
//   - The WebSocket route is the only one without a request timeout.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fingerspell/internal/events"
	"github.com/robalobadob/fingerspell/internal/game"
	"github.com/robalobadob/fingerspell/internal/store"
	"github.com/robalobadob/fingerspell/internal/words"
)

// Config holds the server's tunables; main fills it from the environment.
type Config struct {
	ClientOrigin string        // single allowed CORS / WebSocket origin
	JWTSecret    string        // HS256 key for session tokens
	SessionTTL   time.Duration // token and cookie lifetime
	CookieName   string        // session cookie name
	SecureCookie bool          // Secure + SameSite=None (production)
	DailySalt    string        // salt for daily seeds
	AssetsBase   string        // path prefix of letter reference images
}

const requestTimeout = 10 * time.Second

// Server bundles router, session store, word bank and event sink.
type Server struct {
	r      *chi.Mux
	store  store.Store
	bank   *words.Bank
	events events.Publisher
	cfg    Config
	now    func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, bank *words.Bank, pub events.Publisher, cfg Config) *Server {
	if pub == nil {
		pub = events.Nop{}
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "fingerspell_session"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, bank: bank, events: pub, cfg: cfg, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"fingerspell","endpoints":["/health","/levels","/keyboard","/letters/{letter}","POST /game/new","/game/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		// --- static game data ---
		r.Get("/levels", s.handleLevels)
		r.Get("/keyboard", s.handleKeyboard)
		r.Get("/letters/{letter}", s.handleLetterReference)
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(s.bank.Stats())
		})
	})

	// --- game commands (routes_game.go, ws.go) ---
	s.r.Route("/game", s.mountGame)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// --------------------------- static game data ------------------------------

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	levels := game.DefaultLevels()
	total := 0
	for _, lvl := range levels {
		total += lvl.Words
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"levels": levels, "totalWords": total})
}

func (s *Server) handleKeyboard(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string][]string{"keys": words.Keyboard()})
}

func (s *Server) handleLetterReference(w http.ResponseWriter, r *http.Request) {
	letter, ok := words.Normalize(chi.URLParam(r, "letter"))
	if !ok {
		http.Error(w, `{"error":"invalid_letter"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(words.Reference(letter, s.cfg.AssetsBase))
}
