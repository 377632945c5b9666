package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/IT-Nick/quizbot/internal/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and the admin HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, true)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		application, err := app.NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := application.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close app")
			}
		}()

		log.Info().Str("storage", cfg.Storage.Driver).Msg("app starting")
		return application.ListenAndServe(ctx)
	},
}
