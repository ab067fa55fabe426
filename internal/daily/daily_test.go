package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/db"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, 2, 20, 2, 0, 0, 0, loc)
	if got := DateKey(ts); got != "2026-02-19" {
		t.Fatalf("DateKey = %s, want 2026-02-19", got)
	}
}

func TestSeedStablePerDay(t *testing.T) {
	morning := time.Date(2026, 2, 20, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 2, 20, 23, 0, 0, 0, time.UTC)
	next := morning.Add(24 * time.Hour)

	if Seed(morning, "salt") != Seed(evening, "salt") {
		t.Fatal("seed changed within a day")
	}
	if Seed(morning, "salt") == Seed(next, "salt") {
		t.Fatal("seed repeated on the next day")
	}
	if Seed(morning, "salt") == Seed(morning, "pepper") {
		t.Fatal("salt has no effect")
	}
	if Seed(morning, "salt") <= 0 {
		t.Fatal("seed must be positive")
	}
}

func openTestDB(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "daily.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		t.Fatal(err)
	}
	return NewStore(conn)
}

func TestStoreResultsAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)
	date := "2026-02-20"

	played, err := s.AlreadyPlayed(ctx, "alice", date)
	if err != nil || played {
		t.Fatalf("AlreadyPlayed before insert = %v, %v", played, err)
	}

	results := []Result{
		{UserID: "alice", Date: date, Seed: 7, Selections: 6, ElapsedMs: 9000},
		{UserID: "bob", Date: date, Seed: 7, Selections: 4, ElapsedMs: 9000},
		{UserID: "carol", Date: date, Seed: 7, Selections: 9, ElapsedMs: 5000},
		{UserID: "alice", Date: date, Seed: 7, Selections: 1, ElapsedMs: 1},
		{UserID: "dave", Date: "2026-02-21", Seed: 8, Selections: 1, ElapsedMs: 1},
	}
	for _, r := range results {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatalf("InsertResult(%+v): %v", r, err)
		}
	}

	if played, _ := s.AlreadyPlayed(ctx, "alice", date); !played {
		t.Fatal("alice should have played")
	}

	top, err := s.Leaderboard(ctx, date, 0)
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, r := range top {
		order = append(order, r.UserID)
	}
	want := []string{"carol", "bob", "alice"}
	if len(order) != len(want) {
		t.Fatalf("leaderboard = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("leaderboard = %v, want %v", order, want)
		}
	}
	if top[2].ElapsedMs != 9000 {
		t.Fatalf("duplicate insert overwrote alice: %+v", top[2])
	}
}
