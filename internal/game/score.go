// internal/game/score.go
//
// Guess evaluation.
// Two policies are available:
//   - ScoringContains (default): a non-exact letter is Present whenever the
//     target contains it anywhere. Target letters are not reserved, so a
//     guess that repeats a letter can mark every copy Present even if the
//     target holds only one.
//   - ScoringClassic: the two-pass algorithm that reserves each target letter
//     at most once.
//
// Both are pure: the result depends only on the inputs.
package game

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Scoring selects the evaluation policy.
type Scoring string

const (
	ScoringContains Scoring = "contains"
	ScoringClassic  Scoring = "classic"
)

// ParseScoring accepts "contains" or "classic"; empty means contains.
func ParseScoring(s string) (Scoring, error) {
	switch sc := Scoring(strings.ToLower(strings.TrimSpace(s))); sc {
	case "", ScoringContains:
		return ScoringContains, nil
	case ScoringClassic:
		return sc, nil
	}
	return "", fmt.Errorf("%w: unknown scoring %q", ErrInvalidSettings, s)
}

// Evaluator compares guesses to targets under one policy and locale.
// The zero value uses ScoringContains and language.Und.
type Evaluator struct {
	Scoring Scoring
	Tag     language.Tag
}

// Evaluate scores guess against target with the default evaluator.
func Evaluate(guess, target string) ([]LetterStatus, error) {
	return Evaluator{}.Evaluate(guess, target)
}

// Evaluate canonicalises both words and returns one status per letter.
// A length mismatch is a caller error and returns ErrInvalidGuessLength.
func (e Evaluator) Evaluate(guess, target string) ([]LetterStatus, error) {
	g := Canonical(e.Tag, guess).Letters()
	t := Canonical(e.Tag, target).Letters()
	if len(g) != len(t) {
		return nil, fmt.Errorf("%w: got %d letters, want %d", ErrInvalidGuessLength, len(g), len(t))
	}
	if e.Scoring == ScoringClassic {
		return scoreClassic(g, t), nil
	}
	return scoreContains(g, t), nil
}

// scoreContains marks exact matches Correct, then any letter found anywhere
// in the target Present, otherwise Absent.
func scoreContains(guess, target []rune) []LetterStatus {
	in := make(map[rune]struct{}, len(target))
	for _, r := range target {
		in[r] = struct{}{}
	}
	res := make([]LetterStatus, len(guess))
	for i, r := range guess {
		switch {
		case r == target[i]:
			res[i] = Correct
		case has(in, r):
			res[i] = Present
		default:
			res[i] = Absent
		}
	}
	return res
}

// scoreClassic implements the standard two-pass scoring.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) target letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is a remaining count for
//     that letter, mark Present and decrement; otherwise mark Absent.
func scoreClassic(guess, target []rune) []LetterStatus {
	res := make([]LetterStatus, len(guess))
	counts := make(map[rune]int, len(target))

	for i := range guess {
		if guess[i] == target[i] {
			res[i] = Correct
		} else {
			counts[target[i]]++
		}
	}

	for i, r := range guess {
		if res[i] == Correct {
			continue
		}
		if counts[r] > 0 {
			res[i] = Present
			counts[r]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

func has(set map[rune]struct{}, r rune) bool {
	_, ok := set[r]
	return ok
}
