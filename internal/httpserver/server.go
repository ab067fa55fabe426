// internal/httpserver/server.go
//
// HTTP server wiring for the word-search backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Puzzle endpoints (optional auth): POST /puzzle/new, GET /puzzle/{id},
//     POST /puzzle/select, POST /puzzle/reveal.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /puzzles/mine (auth.go).
//
// Notes:
//   - Active sessions live in the Store; the puzzles table keeps a summary row
//     per game for history and stats, written best effort.
//   - Placements are never sent to the client; only found words are revealed
//     through their highlight cells.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

const (
	minGridSize = 3
	maxGridSize = 30
	maxWords    = 40
)

// Server bundles router, session store, DB handle and configuration.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	cfg   config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordsearch-go","endpoints":["/health","POST /puzzle/new","POST /puzzle/select","POST /puzzle/reveal","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"bank": words.Stats()})
	})

	// Puzzle endpoints: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/puzzle/new", s.handleNewPuzzle)
		r.Get("/puzzle/{id}", s.handleGetPuzzle)
		r.Post("/puzzle/select", s.handleSelect)
		r.Post("/puzzle/reveal", s.handleReveal)
	})

	// Daily puzzle: OPTIONAL AUTH (guests can play; results persisted on win)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// ServeHTTP lets the Server be used directly as an http.Handler (tests).
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog logs method, path, status, bytes and duration for each request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("dur", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ PUZZLE -------------------------------------

// newPuzzleReq is the payload for POST /puzzle/new. Every field is optional.
type newPuzzleReq struct {
	Words         []string `json:"words"`
	Size          int      `json:"size"`
	AllowDiagonal *bool    `json:"allowDiagonal"`
	Seed          int64    `json:"seed"`
}

// handleNewPuzzle generates a puzzle session, stores it, and writes an owner
// row (user_id or anonymous_id) to the puzzles table.
func (s *Server) handleNewPuzzle(w http.ResponseWriter, r *http.Request) {
	var req newPuzzleReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	opts, err := s.puzzleOptions(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	col, owner := s.owner(w, r)
	opts.Owner = ownerTag(col, owner)
	g := game.New(opts)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if len(g.Unplaced) > 0 {
		log.Info().Str("gameId", g.ID).Strs("unplaced", g.Unplaced).Msg("puzzle generated with missing words")
	}

	_, err = s.db.ExecContext(r.Context(),
		`INSERT INTO puzzles (id, `+col+`, seed, size, allow_diagonal, words, placed, started_at, status)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		g.ID, owner, g.Seed, g.Size, g.AllowDiagonal, strings.Join(g.Words, ","), len(g.Placements),
		g.StartedAt.Format(time.RFC3339), string(game.StatePlaying))
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert puzzle row")
	}

	writeJSON(w, http.StatusCreated, g.Snapshot())
}

// puzzleOptions fills request gaps from configuration and the word bank.
func (s *Server) puzzleOptions(req newPuzzleReq) (game.Options, error) {
	opts := game.Options{
		Words:         req.Words,
		Size:          req.Size,
		AllowDiagonal: s.cfg.Puzzle.AllowDiagonal,
		Seed:          req.Seed,
	}
	if req.AllowDiagonal != nil {
		opts.AllowDiagonal = *req.AllowDiagonal
	}
	if opts.Size == 0 {
		opts.Size = s.cfg.Puzzle.Size
	}
	if opts.Size < minGridSize || opts.Size > maxGridSize {
		return opts, errors.New("invalid_size")
	}
	if opts.Seed == 0 {
		opts.Seed = game.NewSeed()
	}
	if len(opts.Words) == 0 {
		opts.Words = s.cfg.Puzzle.Words
	}
	if len(opts.Words) == 0 {
		opts.Words = words.Pick(game.NewRand(opts.Seed), s.cfg.Puzzle.WordCount)
	}
	if len(opts.Words) > maxWords {
		return opts, errors.New("too_many_words")
	}
	if len(game.Dedupe(opts.Words)) == 0 {
		return opts, errors.New("no_words")
	}
	return opts, nil
}

// handleGetPuzzle returns the current view of a session.
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	g, ok := s.ownedGame(r, chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// selectReq is the payload for POST /puzzle/select.
type selectReq struct {
	GameID string     `json:"gameId"`
	Start  *game.Cell `json:"start"`
	End    *game.Cell `json:"end"`
}

// selectRes reports the selection outcome plus progress counters.
type selectRes struct {
	game.Selection
	Found     int `json:"found"`
	Remaining int `json:"remaining"`
}

// handleSelect validates a two-cell selection. A miss is a 200 with
// matched=false. Finished sessions are dropped from the store, so later
// selections get a 404; a 409 only surfaces for a concurrent finish.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, ok := s.ownedGame(r, req.GameID)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	sel, err := g.Select(req.Start, req.End)
	if errors.Is(err, game.ErrFinished) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	found := g.FoundCount()
	s.recordProgress(w, r, g, found)
	if sel.State != game.StatePlaying {
		s.drop(r, g)
	}

	writeJSON(w, http.StatusOK, selectRes{
		Selection: sel,
		Found:     found,
		Remaining: len(g.Placements) - found,
	})
}

// handleReveal ends the session by revealing every placed word.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID string `json:"gameId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, ok := s.ownedGame(r, req.GameID)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err := g.Reveal(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.recordProgress(w, r, g, g.FoundCount())
	s.drop(r, g)
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// ownedGame loads a session the caller may play. Unknown IDs and sessions
// that belong to another player are both reported as missing.
func (s *Server) ownedGame(r *http.Request, id string) (*game.Game, bool) {
	g, err := s.store.Get(r.Context(), id)
	if err != nil || !s.owns(r, g) {
		return nil, false
	}
	return g, true
}

// owns reports whether the caller created g, either as the signed-in user or
// through the guest cookie. A guest who signs up keeps the cookie, so games
// started before signup stay playable.
func (s *Server) owns(r *http.Request, g *game.Game) bool {
	if me := userFrom(r); me != nil && g.Owner == ownerTag("user_id", me.ID) {
		return true
	}
	c, err := r.Cookie(anonCookieName)
	return err == nil && c.Value != "" && g.Owner == ownerTag("anonymous_id", c.Value)
}

// drop removes a finished session; its summary row stays in the puzzles table.
func (s *Server) drop(r *http.Request, g *game.Game) {
	if err := s.store.Delete(r.Context(), g.ID); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("drop finished game")
	}
}

// recordProgress updates the puzzles row and, once the game is over, the
// owner's stats. Best effort: failures are logged, never returned.
func (s *Server) recordProgress(w http.ResponseWriter, r *http.Request, g *game.Game, found int) {
	col, owner := s.owner(w, r)
	state := g.State()

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE puzzles SET selections=?, found=?, status=? WHERE id=? AND `+col+`=?`,
		g.Selections(), found, string(state), g.ID, owner)
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("update puzzle progress")
		return
	}
	if n, _ := res.RowsAffected(); n != 1 {
		log.Warn().Str("gameId", g.ID).Str("owner", owner).Msg("no puzzle row for caller")
		return
	}

	// Stats are bumped only on the transition out of playing, which is the
	// single update that still sees finished_at empty.
	if state != game.StatePlaying {
		res, err := tx.Exec(`UPDATE puzzles SET finished_at=? WHERE id=? AND `+col+`=? AND finished_at IS NULL`,
			g.FinishedAt.Format(time.RFC3339), g.ID, owner)
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("finish puzzle")
			return
		}
		if n, _ := res.RowsAffected(); n == 1 && col == "user_id" {
			if err := bumpStats(tx, owner, state == game.StateWon); err != nil {
				log.Warn().Err(err).Str("user", owner).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("commit progress")
	}
}

// owner returns the puzzles column and value identifying the caller:
// user_id when authenticated, anonymous_id otherwise.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, string) {
	if me := userFrom(r); me != nil {
		return "user_id", me.ID
	}
	return "anonymous_id", s.ensureAnonID(w, r)
}

// ownerTag is the Game.Owner value for a puzzles owner column and ID.
func ownerTag(col, id string) string { return col + ":" + id }

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
