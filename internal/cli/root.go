// Package cli wires configuration, logging and the game front ends into the
// wordguess command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordguess/internal/config"
	"github.com/robalobadob/wordguess/internal/words"
)

var rootCmd = &cobra.Command{
	Use:   "wordguess",
	Short: "Guess a hidden word in a limited number of attempts",
	Long: `wordguess fetches a random word and lets you guess it. Each guess is
scored letter by letter as correct, present or absent.

Configuration is read from the environment and an optional .env file;
command-line flags override it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(playCmd, serveCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setupLogging points the global logger at stderr (console) or, when the
// terminal belongs to the TUI, at LOG_FILE. The returned func closes any
// opened file.
func setupLogging(c *config.Config, console bool) (func(), error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)

	var w io.Writer = io.Discard
	closer := func() {}
	switch {
	case console:
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	case c.LogFile != "":
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return closer, nil
}

func newWordClient(c *config.Config) *words.Client {
	return words.NewClient(c.WordAPIURL,
		words.WithTimeout(c.WordAPITimeout),
		words.WithMaxDraws(c.WordMaxDraws),
		words.WithDrawDelay(c.WordDrawDelay),
		words.WithLengthHint(c.WordLengthHint),
		words.WithLogger(log.Logger),
	)
}
