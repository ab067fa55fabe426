// internal/daily/store.go
//
// SQLite persistence for daily puzzle results and the leaderboard.
// One row per (user, date); later inserts for the same pair are ignored.

package daily

import (
	"context"
	"database/sql"
)

// DefaultLeaderboardSize is used when Leaderboard gets a non-positive limit.
const DefaultLeaderboardSize = 20

// Result is one player's completed daily puzzle.
type Result struct {
	UserID     string `json:"userId"`
	Date       string `json:"date"`
	Seed       int64  `json:"seed"`
	Selections int    `json:"selections"`
	ElapsedMs  int    `json:"elapsedMs"`
}

// LBRow is a single leaderboard entry.
type LBRow struct {
	UserID     string `json:"userId"`
	Selections int    `json:"selections"`
	ElapsedMs  int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a stored result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r; a second result for the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, seed, selections, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.UserID, r.Date, r.Seed, r.Selections, r.ElapsedMs,
	)
	return err
}

// Leaderboard returns the fastest finishers for date, then fewest
// selections, then earliest submission.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, selections, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY elapsed_ms ASC, selections ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Selections, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
