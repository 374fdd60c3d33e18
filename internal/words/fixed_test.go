package words

import (
	"context"
	"errors"
	"testing"

	"github.com/robalobadob/wordguess/internal/game"
)

func TestFixedCyclesByLength(t *testing.T) {
	f := NewFixed("apple", "pear", "ghost", "banana")
	ctx := context.Background()

	want := []string{"APPLE", "GHOST", "APPLE"}
	for i, w := range want {
		got, err := f.FetchWord(ctx, "en", 5)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("draw %d = %q, want %q", i, got, w)
		}
	}
	if got, _ := f.FetchWord(ctx, "en", 6); got != "BANANA" {
		t.Fatalf("six-letter draw = %q", got)
	}
}

func TestFixedNoMatch(t *testing.T) {
	f := NewFixed("apple")
	if _, err := f.FetchWord(context.Background(), "en", 4); !errors.Is(err, game.ErrWordFetchFailed) {
		t.Fatalf("expected ErrWordFetchFailed, got %v", err)
	}
	if _, err := NewFixed().FetchWord(context.Background(), "en", 5); !errors.Is(err, game.ErrWordFetchFailed) {
		t.Fatalf("expected ErrWordFetchFailed for empty list, got %v", err)
	}
}

func TestFixedDrivesSession(t *testing.T) {
	s := game.NewSession(game.Settings{Language: "en", Difficulty: game.Easy})
	if err := s.Begin(context.Background(), NewFixed("crane", "pear")); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if w, _ := s.Target(); w != "PEAR" {
		t.Fatalf("target = %s", w)
	}
}

func TestFixedCountsLettersBeforeUpperCase(t *testing.T) {
	f := NewFixed("maße", "masse")
	if got, err := f.FetchWord(context.Background(), "de", 4); err != nil || got != "MAßE" {
		t.Fatalf("four-letter draw = %q, %v", got, err)
	}
	if got, _ := f.FetchWord(context.Background(), "de", 5); got != "MASSE" {
		t.Fatalf("five-letter draw = %q", got)
	}
}
