// internal/words/words.go
//
// Client for the random-word web API.
//
// Responsibilities:
//   - Request one random word per call (GET {base}/word?lang=xx&number=1).
//   - Canonicalise it (upper-case for the language, NFC).
//   - Re-draw while the word has the wrong letter count, up to a cap.
//
// Failure policy:
//   • Transport errors, non-2xx statuses and malformed bodies are permanent:
//     they surface as game.ErrWordFetchFailed after one request and are never
//     retried here. Retrying is the caller's decision.
//   • Wrong-length (or non-letter) words are re-drawn on a constant interval,
//     at most MaxDraws requests in total, then game.ErrWordFetchFailed.
//
// Environment variables (read by internal/config, passed in as options):
//   WORD_API_URL, WORD_API_TIMEOUT, WORD_MAX_DRAWS, WORD_DRAW_DELAY, WORD_LENGTH_HINT

package words

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/valyala/fasthttp"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordguess/internal/game"
)

const (
	DefaultBaseURL   = "https://random-word-api.herokuapp.com"
	defaultTimeout   = 10 * time.Second
	defaultMaxDraws  = 50
	defaultDrawDelay = 100 * time.Millisecond
)

var errWrongLength = errors.New("wrong length")

// Client implements game.WordProvider over HTTP.
type Client struct {
	baseURL    string
	http       *fasthttp.Client
	timeout    time.Duration
	maxDraws   uint
	drawDelay  time.Duration
	lengthHint bool
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request (the context deadline wins when sooner).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxDraws caps the number of requests per FetchWord call.
func WithMaxDraws(n uint) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxDraws = n
		}
	}
}

// WithDrawDelay sets the pause between re-draws.
func WithDrawDelay(d time.Duration) Option {
	return func(c *Client) { c.drawDelay = d }
}

// WithLengthHint also sends the wanted length as a query parameter, for
// APIs that can filter server side. Results are still checked.
func WithLengthHint(on bool) Option {
	return func(c *Client) { c.lengthHint = on }
}

// WithLogger attaches a logger; the default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient builds a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &fasthttp.Client{ReadTimeout: defaultTimeout, WriteTimeout: defaultTimeout, MaxConnsPerHost: 8},
		timeout:   defaultTimeout,
		maxDraws:  defaultMaxDraws,
		drawDelay: defaultDrawDelay,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchWord returns an upper-case word of exactly length letters in lang.
func (c *Client) FetchWord(ctx context.Context, lang string, length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: length must be positive, got %d", game.ErrWordFetchFailed, length)
	}
	tag := language.Make(lang)

	draws := 0
	op := func() (string, error) {
		draws++
		raw, err := c.draw(ctx, lang, length)
		if err != nil {
			return "", backoff.Permanent(err)
		}
		w := game.Canonical(tag, raw)
		if w.Len() != length || !w.IsLetters() {
			return "", fmt.Errorf("%w: %q", errWrongLength, raw)
		}
		return w.String(), nil
	}

	word, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.drawDelay)),
		backoff.WithMaxTries(c.maxDraws),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.Debug().Err(err).Int("draw", draws).Dur("next", next).Msg("re-drawing word")
		}),
	)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		c.log.Warn().Err(err).Str("lang", lang).Int("length", length).Int("draws", draws).Msg("word fetch failed")
		switch {
		case errors.Is(err, game.ErrWordFetchFailed):
			return "", err
		case errors.Is(err, errWrongLength):
			return "", fmt.Errorf("%w: no %d-letter word in %d draws", game.ErrWordFetchFailed, length, draws)
		default:
			return "", fmt.Errorf("%w: %w", game.ErrWordFetchFailed, err)
		}
	}
	c.log.Debug().Str("lang", lang).Int("length", length).Int("draws", draws).Msg("word fetched")
	return word, nil
}

// draw performs one request and returns the raw word.
func (c *Client) draw(ctx context.Context, lang string, length int) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(c.baseURL + "/word")
	args := req.URI().QueryArgs()
	args.Add("lang", lang)
	args.Add("number", "1")
	if c.lengthHint {
		args.Add("length", strconv.Itoa(length))
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", game.ErrWordFetchFailed, err)
	}
	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return "", fmt.Errorf("%w: request: %w", game.ErrWordFetchFailed, err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("%w: word api status=%d body=%s", game.ErrWordFetchFailed, status, truncate(string(resp.Body()), 256))
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: malformed body %s", game.ErrWordFetchFailed, truncate(string(body), 256))
	}
	first := gjson.GetBytes(body, "0")
	if first.Type != gjson.String || first.Str == "" {
		return "", fmt.Errorf("%w: no word in body %s", game.ErrWordFetchFailed, truncate(string(body), 256))
	}
	return first.Str, nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
