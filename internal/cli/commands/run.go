// Package commands provides CLI subcommands for Hibari.
package commands

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hibari-bot/hibari/internal/bot"
	"github.com/hibari-bot/hibari/internal/client"
	"github.com/hibari-bot/hibari/internal/config"
	"github.com/hibari-bot/hibari/internal/event"
)

// NewRunCommand creates the run subcommand, the long-running process that
// holds every configured account online.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "run",
		Short:   "Connect the configured accounts and serve events",
		Example: `  hibari run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigFlag(cmd)
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Logging)

			manager := bot.NewManager(logger.With().Str("component", "bot").Logger())
			c := client.New(manager, logger.With().Str("component", "client").Logger())
			manager.Bind(c)

			manager.OnEvent(func(b *bot.Bot, ev event.Event) {
				logger.Debug().Int64("account", b.Account).
					Str("type", ev.EventType()).Msg("Event")
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Int("accounts", len(cfg.Accounts)).Msg("Starting")
			return c.Run(ctx, cfg.AccountInfos())
		},
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg config.Logging) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// applyConfigFlag honors the global --config flag by routing it through the
// config package's path override.
func applyConfigFlag(cmd *cobra.Command) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		_ = os.Setenv("HIBARI_CONFIG_PATH", path)
	}
}
