// Package config loads bot configuration from environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// SeedLink pairs a game title with the legacy environment variable holding
// its VIP-server URL. Used only to populate an empty catalog on first run.
type SeedLink struct {
	Title string
	URL   string
}

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Telegram
	BotToken        string `env:"BOT_TOKEN"`
	AdminIDs        string `env:"ADMIN_IDS"`
	ChannelUsername string `env:"CHANNEL_USERNAME" envDefault:"@thespikeacc"`

	// Storage
	DBPath string `env:"DB_PATH" envDefault:"bot.db"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	// Legacy one-time seed of the catalog (earlier deployments kept the
	// links directly in env vars; these are read only when the games
	// table is empty).
	LinkAdoptMe        string `env:"LINK_ADOPT_ME"`
	LinkGrowAGarden    string `env:"LINK_GROW_A_GARDEN"`
	LinkMurderMystery2 string `env:"LINK_MURDER_MYSTERY_2"`
	LinkJailbreak      string `env:"LINK_JAILBREAK"`
	LinkBloxFruits     string `env:"LINK_BLOX_FRUITS"`
	LinkPlsDonate      string `env:"LINK_PLS_DONATE"`
}

// Load parses environment variables into a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if strings.TrimSpace(cfg.BotToken) == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	return cfg, nil
}

// AdminIDSet parses the comma-separated ADMIN_IDS list into a set of
// Telegram user IDs. Entries that are not valid integers are dropped.
func (c *Config) AdminIDSet() map[int64]struct{} {
	admins := make(map[int64]struct{})
	for _, part := range strings.Split(c.AdminIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		admins[id] = struct{}{}
	}
	return admins
}

// SeedLinks returns the legacy game list with whatever URLs the environment
// provides. Missing URLs are kept as empty strings so the game still appears
// in the catalog without a link.
func (c *Config) SeedLinks() []SeedLink {
	return []SeedLink{
		{Title: "Adopt Me", URL: c.LinkAdoptMe},
		{Title: "Grow A Garden", URL: c.LinkGrowAGarden},
		{Title: "Murder Mystery 2", URL: c.LinkMurderMystery2},
		{Title: "Jailbreak", URL: c.LinkJailbreak},
		{Title: "Blox Fruits", URL: c.LinkBloxFruits},
		{Title: "Pls Donate", URL: c.LinkPlsDonate},
	}
}

// ChannelLink returns the public t.me link for the required channel.
func (c *Config) ChannelLink() string {
	return "https://t.me/" + strings.TrimPrefix(c.ChannelUsername, "@")
}
