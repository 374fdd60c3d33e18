package words

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robalobadob/wordguess/internal/game"
)

// wordServer answers /word with the given bodies in order, repeating the last.
func wordServer(t *testing.T, status int, bodies ...string) (*httptest.Server, *int32, chan string) {
	t.Helper()
	var n int32
	queries := make(chan string, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/word" {
			http.NotFound(w, r)
			return
		}
		i := int(atomic.AddInt32(&n, 1)) - 1
		if i >= len(bodies) {
			i = len(bodies) - 1
		}
		select {
		case queries <- r.URL.RawQuery:
		default:
		}
		w.WriteHeader(status)
		fmt.Fprint(w, bodies[i])
	}))
	t.Cleanup(srv.Close)
	return srv, &n, queries
}

func newTestClient(url string, opts ...Option) *Client {
	opts = append([]Option{WithDrawDelay(0), WithTimeout(2 * time.Second)}, opts...)
	return NewClient(url, opts...)
}

func TestFetchWordFirstDraw(t *testing.T) {
	srv, n, queries := wordServer(t, http.StatusOK, `["apple"]`)
	c := newTestClient(srv.URL)

	w, err := c.FetchWord(context.Background(), "en", 5)
	if err != nil {
		t.Fatalf("FetchWord: %v", err)
	}
	if w != "APPLE" {
		t.Fatalf("word = %q, want APPLE", w)
	}
	if got := atomic.LoadInt32(n); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
	if q := <-queries; q != "lang=en&number=1" {
		t.Fatalf("query = %q", q)
	}
}

func TestFetchWordRedrawsWrongLength(t *testing.T) {
	srv, n, _ := wordServer(t, http.StatusOK, `["cat"]`, `["elephant"]`, `["canción"]`, `["perro"]`)
	c := newTestClient(srv.URL)

	w, err := c.FetchWord(context.Background(), "es", 5)
	if err != nil {
		t.Fatalf("FetchWord: %v", err)
	}
	if w != "PERRO" {
		t.Fatalf("word = %q, want PERRO", w)
	}
	if got := atomic.LoadInt32(n); got != 4 {
		t.Fatalf("requests = %d, want 4", got)
	}
}

func TestFetchWordCountsLettersNotBytes(t *testing.T) {
	srv, _, _ := wordServer(t, http.StatusOK, `["ñandú"]`)
	c := newTestClient(srv.URL)

	w, err := c.FetchWord(context.Background(), "es", 5)
	if err != nil {
		t.Fatalf("FetchWord: %v", err)
	}
	if w != "ÑANDÚ" {
		t.Fatalf("word = %q", w)
	}
}

func TestFetchWordRedrawsExpandingWord(t *testing.T) {
	// "maße" is four letters; it must not pass as the five-letter "MASSE".
	srv, n, _ := wordServer(t, http.StatusOK, `["maße"]`, `["masse"]`)
	c := newTestClient(srv.URL)

	w, err := c.FetchWord(context.Background(), "de", 5)
	if err != nil {
		t.Fatalf("FetchWord: %v", err)
	}
	if w != "MASSE" || atomic.LoadInt32(n) != 2 {
		t.Fatalf("word = %q after %d requests", w, atomic.LoadInt32(n))
	}
}

func TestFetchWordDrawCap(t *testing.T) {
	srv, n, _ := wordServer(t, http.StatusOK, `["cat"]`)
	c := newTestClient(srv.URL, WithMaxDraws(3))

	_, err := c.FetchWord(context.Background(), "en", 5)
	if !errors.Is(err, game.ErrWordFetchFailed) {
		t.Fatalf("expected ErrWordFetchFailed, got %v", err)
	}
	if got := atomic.LoadInt32(n); got != 3 {
		t.Fatalf("requests = %d, want 3", got)
	}
}

func TestFetchWordServerErrorNotRetried(t *testing.T) {
	srv, n, _ := wordServer(t, http.StatusServiceUnavailable, `unavailable`)
	c := newTestClient(srv.URL)

	_, err := c.FetchWord(context.Background(), "en", 5)
	if !errors.Is(err, game.ErrWordFetchFailed) {
		t.Fatalf("expected ErrWordFetchFailed, got %v", err)
	}
	if got := atomic.LoadInt32(n); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
}

func TestFetchWordMalformedBody(t *testing.T) {
	for _, body := range []string{`not json`, `[]`, `[42]`, `{"word":"apple"}`} {
		srv, _, _ := wordServer(t, http.StatusOK, body)
		c := newTestClient(srv.URL)
		if _, err := c.FetchWord(context.Background(), "en", 5); !errors.Is(err, game.ErrWordFetchFailed) {
			t.Errorf("body %s: expected ErrWordFetchFailed, got %v", body, err)
		}
	}
}

func TestFetchWordUnreachable(t *testing.T) {
	srv, _, _ := wordServer(t, http.StatusOK, `["apple"]`)
	url := srv.URL
	srv.Close()

	c := newTestClient(url)
	if _, err := c.FetchWord(context.Background(), "en", 5); !errors.Is(err, game.ErrWordFetchFailed) {
		t.Fatalf("expected ErrWordFetchFailed, got %v", err)
	}
}

func TestFetchWordCancelledContext(t *testing.T) {
	srv, n, _ := wordServer(t, http.StatusOK, `["apple"]`)
	c := newTestClient(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchWord(ctx, "en", 5)
	if !errors.Is(err, game.ErrWordFetchFailed) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected wrapped context.Canceled, got %v", err)
	}
	if got := atomic.LoadInt32(n); got != 0 {
		t.Fatalf("requests = %d, want 0", got)
	}
}

func TestFetchWordLengthHint(t *testing.T) {
	srv, _, queries := wordServer(t, http.StatusOK, `["hola"]`)
	c := newTestClient(srv.URL, WithLengthHint(true))

	if _, err := c.FetchWord(context.Background(), "es", 4); err != nil {
		t.Fatalf("FetchWord: %v", err)
	}
	if q := <-queries; q != "lang=es&number=1&length=4" {
		t.Fatalf("query = %q", q)
	}
}

func TestFetchWordRejectsNonPositiveLength(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	if _, err := c.FetchWord(context.Background(), "en", 0); !errors.Is(err, game.ErrWordFetchFailed) {
		t.Fatalf("expected ErrWordFetchFailed, got %v", err)
	}
}

func TestClientSatisfiesWordProvider(t *testing.T) {
	var _ game.WordProvider = NewClient("")
	var _ game.WordProvider = NewFixed()
}
