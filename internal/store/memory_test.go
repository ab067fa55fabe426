package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/robalobadob/wordsearch/internal/game"
)

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(game.Options{Words: []string{"CAT"}, Size: 4, Seed: 1})

	if err := s.Save(ctx, g); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, g.ID)
	if err != nil || got != g {
		t.Fatalf("Get = %p, %v; want %p", got, err, g)
	}
	if _, err := s.Get(ctx, "nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: err = %v", err)
	}
	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("session still present after Delete")
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			g := game.New(game.Options{Words: []string{"DOG"}, Size: 4, Seed: seed})
			_ = s.Save(ctx, g)
			if _, err := s.Get(ctx, g.ID); err != nil {
				t.Errorf("Get(%s): %v", g.ID, err)
			}
		}(int64(i + 1))
	}
	wg.Wait()
}
