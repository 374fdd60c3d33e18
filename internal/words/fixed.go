// internal/words/fixed.go
//
// Deterministic word provider.
// Serves a configured list of words in order, wrapping around, skipping
// entries of the wrong length. Used for `play --target` and in tests.

package words

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"github.com/robalobadob/wordguess/internal/game"
)

// Fixed implements game.WordProvider from a static list.
type Fixed struct {
	mu    sync.Mutex // guards next
	words []string
	next  int
}

// NewFixed constructs a provider that cycles through words.
func NewFixed(words ...string) *Fixed {
	return &Fixed{words: append([]string(nil), words...)}
}

// FetchWord returns the next listed word with exactly length letters.
func (f *Fixed) FetchWord(ctx context.Context, lang string, length int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", game.ErrWordFetchFailed, err)
	}
	tag := language.Make(lang)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < len(f.words); i++ {
		idx := (f.next + i) % len(f.words)
		w := game.Canonical(tag, f.words[idx])
		if w.Len() == length && w.IsLetters() {
			f.next = idx + 1
			return w.String(), nil
		}
	}
	return "", fmt.Errorf("%w: no %d-letter word configured", game.ErrWordFetchFailed, length)
}
