package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "123:abc")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "123:abc", cfg.BotToken)
		assert.Equal(t, "@thespikeacc", cfg.ChannelUsername)
		assert.Equal(t, "bot.db", cfg.DBPath)
		assert.Equal(t, "INFO", cfg.LogLevel)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BOT_TOKEN")
	})

	t.Run("token is trimmed", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "  123:abc  ")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "123:abc", cfg.BotToken)
	})
}

func TestAdminIDSet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int64
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "12345", want: []int64{12345}},
		{name: "several with spaces", in: " 1, 2 ,3 ", want: []int64{1, 2, 3}},
		{name: "junk entries dropped", in: "1,abc,,2,12.5", want: []int64{1, 2}},
		{name: "all junk", in: "abc,def", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AdminIDs: tt.in}

			got := cfg.AdminIDSet()
			assert.Len(t, got, len(tt.want))
			for _, id := range tt.want {
				assert.Contains(t, got, id)
			}
		})
	}
}

func TestSeedLinks(t *testing.T) {
	cfg := &Config{LinkBloxFruits: "https://example.com/blox"}

	links := cfg.SeedLinks()
	require.Len(t, links, 6)

	byTitle := make(map[string]string, len(links))
	for _, l := range links {
		byTitle[l.Title] = l.URL
	}
	assert.Equal(t, "https://example.com/blox", byTitle["Blox Fruits"])
	assert.Empty(t, byTitle["Adopt Me"], "unset links stay empty")
}

func TestChannelLink(t *testing.T) {
	tests := []struct {
		username string
		want     string
	}{
		{username: "@thespikeacc", want: "https://t.me/thespikeacc"},
		{username: "somechannel", want: "https://t.me/somechannel"},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			cfg := &Config{ChannelUsername: tt.username}
			assert.Equal(t, tt.want, cfg.ChannelLink())
		})
	}
}
