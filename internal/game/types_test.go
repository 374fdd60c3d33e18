package game

import (
	"errors"
	"testing"
)

func TestDifficultyTable(t *testing.T) {
	tests := []struct {
		in          string
		length, max int
	}{
		{"easy", 4, 5},
		{"Medium", 5, 6},
		{" hard ", 6, 7},
	}
	for _, tt := range tests {
		d, err := ParseDifficulty(tt.in)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q): %v", tt.in, err)
		}
		if d.WordLength() != tt.length || d.MaxAttempts() != tt.max {
			t.Errorf("%s: length=%d max=%d, want %d/%d", d, d.WordLength(), d.MaxAttempts(), tt.length, tt.max)
		}
	}
	if _, err := ParseDifficulty("insane"); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if err := (Settings{Language: "es", Difficulty: Hard}).Validate(); err != nil {
		t.Fatalf("es/hard invalid: %v", err)
	}
	if err := (Settings{Language: "not a tag!", Difficulty: Easy}).Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings for bad tag, got %v", err)
	}
	if err := (Settings{Language: "en", Difficulty: "x"}).Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings for bad difficulty, got %v", err)
	}
}

func TestCanonical(t *testing.T) {
	if got := Canonical(DefaultSettings().Tag(), "  crane "); got != "CRANE" {
		t.Fatalf("Canonical = %q", got)
	}
	// Decomposed "n" + combining tilde composes to one letter.
	if got := Canonical(DefaultSettings().Tag(), "an\u0303o"); got.Len() != 3 {
		t.Fatalf("Len = %d for %q", got.Len(), got)
	}
	// ß has no single-letter upper case and stays as is.
	if got := Canonical(Settings{Language: "de"}.Tag(), "straße"); got != "STRAßE" || got.Len() != 6 {
		t.Fatalf("Canonical = %q (len %d)", got, got.Len())
	}
}
