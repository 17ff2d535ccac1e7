package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	return s
}

func TestGameRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddGame(ctx, "X", "https://a")
	require.NoError(t, err)

	game, err := s.GetGame(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "X", game.Title)
	assert.Equal(t, "https://a", game.URL)

	require.NoError(t, s.UpdateGameURL(ctx, id, "https://b"))

	game, err = s.GetGame(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "https://b", game.URL)
}

func TestGetGameMissing(t *testing.T) {
	s := newTestStore(t)

	game, err := s.GetGame(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestUpdateGameURLMissingIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateGameURL(ctx, 999, "https://b"))

	count, err := s.CountGames(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAddGameWithoutURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddGame(ctx, "No Link Yet", "")
	require.NoError(t, err)

	game, err := s.GetGame(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.False(t, game.HasURL())
}

func TestListGamesPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		_, err := s.AddGame(ctx, fmt.Sprintf("Game %02d", i), "")
		require.NoError(t, err)
	}

	total, err := s.CountGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	first, err := s.ListGames(ctx, 0, 10)
	require.NoError(t, err)
	second, err := s.ListGames(ctx, 10, 10)
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 10)

	// Pages are disjoint and together cover the first 20 ids ascending.
	seen := make(map[int64]bool)
	var prev int64
	for _, g := range append(first, second...) {
		assert.False(t, seen[g.ID], "id %d appeared twice", g.ID)
		seen[g.ID] = true
		assert.Greater(t, g.ID, prev)
		prev = g.ID
	}

	tail, err := s.ListGames(ctx, 20, 10)
	require.NoError(t, err)
	assert.Len(t, tail, 5)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seeds := []SeedGame{
		{Title: "Adopt Me", URL: "https://example.com/adopt"},
		{Title: "Jailbreak", URL: ""},
	}

	require.NoError(t, s.Seed(ctx, seeds))
	require.NoError(t, s.Seed(ctx, seeds))

	count, err := s.CountGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpsertUserRefreshesSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, 100, "old", "Old", "Name"))
	require.NoError(t, s.UpsertUser(ctx, 100, "new", "New", "Name"))

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	users, err := s.ListUsers(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "@new", users[0].DisplayName())
}

func TestListUsersActionCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, 100, "alice", "", ""))
	require.NoError(t, s.UpsertUser(ctx, 200, "", "", ""))

	require.NoError(t, s.LogEvent(ctx, 100, EventKindMessage, "/start"))
	require.NoError(t, s.LogEvent(ctx, 100, EventKindCallback, "g:1"))
	require.NoError(t, s.LogEvent(ctx, 200, EventKindMessage, "/links"))

	users, err := s.ListUsers(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 2)

	counts := make(map[int64]int64)
	for _, u := range users {
		counts[u.TelegramID] = u.ActionCount
	}
	assert.Equal(t, int64(2), counts[100])
	assert.Equal(t, int64(1), counts[200])

	// The user without a username falls back to their id.
	for _, u := range users {
		if u.TelegramID == 200 {
			assert.Equal(t, "id200", u.DisplayName())
		}
	}
}

func TestUserEventsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.LogEvent(ctx, 100, EventKindMessage, fmt.Sprintf("msg %d", i)))
	}
	require.NoError(t, s.LogEvent(ctx, 200, EventKindMessage, "other user"))

	total, err := s.CountUserEvents(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	events, err := s.ListUserEvents(ctx, 100, 0, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Same-timestamp rows fall back to insertion order, newest first.
	assert.Equal(t, "msg 4", events[0].Content)
	assert.Equal(t, "msg 3", events[1].Content)
	assert.Equal(t, "msg 2", events[2].Content)

	rest, err := s.ListUserEvents(ctx, 100, 3, 3)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "msg 1", rest[0].Content)
	assert.Equal(t, "msg 0", rest[1].Content)
}
