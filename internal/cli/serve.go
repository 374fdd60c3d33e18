package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordguess/internal/config"
	"github.com/robalobadob/wordguess/internal/httpserver"
	"github.com/robalobadob/wordguess/internal/store"
)

const devSecret = "dev_secret_change_me"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local round API",
	Long: `Start an HTTP server that hosts rounds for a browser or other UI.

Endpoints:
  GET  /health        Health check
  POST /round/new     Start a round (optional language, difficulty)
  POST /round/guess   Submit a guess for the round in the token
  POST /round/reset   New word for the same round, or retry a failed fetch
  GET  /round         Current round snapshot`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "port to listen on (default PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("port"); v != "" {
		cfg.Port = v
	}

	closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.RoundSecret == devSecret {
		log.Warn().Msg("ROUND_SECRET is the development default")
	}

	srv := httpserver.New(store.NewMemoryStore(), newWordClient(cfg), httpserver.Options{
		Secret:           cfg.RoundSecret,
		ClientOrigin:     cfg.ClientOrigin,
		Defaults:         cfg.Settings(),
		Scoring:          cfg.ScoringMode(),
		RoundTTL:         cfg.RoundTTL,
		AllowFixedTarget: cfg.AllowFixedTarget,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Port).Str("origin", cfg.ClientOrigin).Msg("starting wordguess api")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
