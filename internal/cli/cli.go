// Package cli wires configuration, storage and the Telegram client into
// the runnable bot command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thespike/vip-link-bot/internal/bot"
	"github.com/thespike/vip-link-bot/internal/config"
	"github.com/thespike/vip-link-bot/internal/logger"
	"github.com/thespike/vip-link-bot/internal/store"
)

var flagDBPath string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vip-link-bot",
		Short: "Telegram bot handing out VIP/private-server links",
		Long: `Telegram bot that hands out VIP/private-server links for a game
catalog, gated behind a mandatory channel subscription, with an inline
admin panel for managing links and reviewing per-user activity.

Configuration comes from the environment: BOT_TOKEN (required),
ADMIN_IDS, CHANNEL_USERNAME, DB_PATH, LOG_LEVEL.`,
		RunE:         runBot,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flagDBPath, "db-path", "", "SQLite database path (overrides DB_PATH)")

	return cmd
}

// runBot is the main command logic: load config, open the store, seed the
// catalog once, then poll until interrupted.
func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}

	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), os.Stdout))

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seeds := make([]store.SeedGame, 0, len(cfg.SeedLinks()))
	for _, s := range cfg.SeedLinks() {
		seeds = append(seeds, store.SeedGame{Title: s.Title, URL: s.URL})
	}
	if err := st.Seed(ctx, seeds); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	svc, err := bot.New(cfg, st)
	if err != nil {
		return fmt.Errorf("starting bot: %w", err)
	}

	logger.Info("bot started", logger.Fields{
		"channel": cfg.ChannelUsername,
		"admins":  len(cfg.AdminIDSet()),
		"db_path": cfg.DBPath,
	})

	svc.Start(ctx)
	return nil
}
