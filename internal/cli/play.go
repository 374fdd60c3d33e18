package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordguess/internal/config"
	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/tui"
	"github.com/robalobadob/wordguess/internal/words"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play rounds in an interactive terminal UI.

Examples:
  wordguess play                      # defaults from the environment
  wordguess play -l es -d easy        # four-letter Spanish words
  wordguess play --scoring classic    # duplicate-aware scoring
  wordguess play --target crane       # fixed word, no network`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringP("lang", "l", "", "word language (default WORDLE_LANGUAGE)")
	playCmd.Flags().StringP("difficulty", "d", "", "easy, medium or hard (default WORDLE_DIFFICULTY)")
	playCmd.Flags().String("scoring", "", "contains or classic (default WORDLE_SCORING)")
	playCmd.Flags().String("target", "", "play this word instead of fetching one")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyPlayFlags(cmd, cfg); err != nil {
		return err
	}

	settings := cfg.Settings()
	target, _ := cmd.Flags().GetString("target")
	if target != "" {
		w := game.Canonical(settings.Tag(), target)
		if w.Len() != settings.Difficulty.WordLength() || !w.IsLetters() {
			return fmt.Errorf("--target must be %d letters for %s difficulty", settings.Difficulty.WordLength(), settings.Difficulty)
		}
	}

	closeLog, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	var p game.WordProvider
	if target != "" {
		p = words.NewFixed(target)
	} else {
		p = newWordClient(cfg)
	}

	s := game.NewSession(settings, game.WithScoring(cfg.ScoringMode()))
	log.Info().Str("round", s.ID()).Str("lang", settings.Language).
		Str("difficulty", string(settings.Difficulty)).Msg("starting play")
	return tui.Run(s, p)
}

func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) error {
	if v, _ := cmd.Flags().GetString("lang"); v != "" {
		cfg.Language = v
	}
	if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
		cfg.Difficulty = v
	}
	if v, _ := cmd.Flags().GetString("scoring"); v != "" {
		cfg.Scoring = v
	}
	return cfg.Validate()
}
