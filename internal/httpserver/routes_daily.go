// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses a session)
//   - POST /daily/select      → submit a two-cell selection for today's puzzle
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Every player gets the same grid for a date: words and layout are both
// derived from daily.Seed(date, DAILY_SALT). Each player can finish once per
// day (enforced by the daily_results UNIQUE constraint + in-memory session).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	now      func() time.Time
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient state for an in-progress daily puzzle.
type dailySession struct {
	Game   *game.Game
	UserID string
	Date   string
	Seed   int64
	Start  time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/select", dd.handleSelect)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the current date key and its puzzle seed.
func (d *dailyServer) today() (string, int64) {
	now := d.now().UTC()
	return daily.DateKey(now), daily.Seed(now, d.srv.cfg.DailySalt)
}

// dailyOptions builds the puzzle shared by every player on a given seed.
func (d *dailyServer) dailyOptions(seed int64) game.Options {
	cfg := d.srv.cfg.Puzzle
	return game.Options{
		Words:         words.ForSeed(seed, cfg.WordCount),
		Size:          cfg.Size,
		AllowDiagonal: cfg.AllowDiagonal,
		Seed:          seed,
	}
}

// playerID returns the authenticated user ID, or the anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string     `json:"gameId"`
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	Puzzle *game.View `json:"puzzle,omitempty"`
}

// handleNew creates or reuses today's session.
//   - If the player already has a stored result for today → Played=true.
//   - Otherwise create/reuse an in-memory session and return its view.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	date, seed := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("daily already-played check")
	} else if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	for k, old := range d.sessions {
		if old.Date != date {
			delete(d.sessions, k)
		}
	}
	sess, ok := d.sessions[key]
	if !ok {
		sess = &dailySession{
			Game:   game.New(d.dailyOptions(seed)),
			UserID: uid,
			Date:   date,
			Seed:   seed,
			Start:  time.Now(),
		}
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	view := sess.Game.Snapshot()
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.Game.ID, Date: date, Puzzle: &view})
}

// -----------------------------------------------------------------------------
// /daily/select

// dailySelectRes is the response payload for /daily/select.
type dailySelectRes struct {
	game.Selection
	Found     int `json:"found"`
	Remaining int `json:"remaining"`
}

// handleSelect applies a selection to today's session and stores the result
// when the last word is found.
func (d *dailyServer) handleSelect(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date, _ := d.today()

	d.mu.Lock()
	sess, ok := d.sessions[uid+"|"+date]
	d.mu.Unlock()
	if !ok || sess.Game.ID != req.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	sel, err := sess.Game.Select(req.Start, req.End)
	if errors.Is(err, game.ErrFinished) {
		sel.State = "locked"
	}
	found := sess.Game.FoundCount()

	if err == nil && sel.State == game.StateWon {
		res := daily.Result{
			UserID:     uid,
			Date:       date,
			Seed:       sess.Seed,
			Selections: sess.Game.Selections(),
			ElapsedMs:  int(time.Since(sess.Start).Milliseconds()),
		}
		if err := d.store.InsertResult(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}

	writeJSON(w, http.StatusOK, dailySelectRes{
		Selection: sel,
		Found:     found,
		Remaining: len(sess.Game.Placements) - found,
	})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, daily.DefaultLeaderboardSize)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
