package bot

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "https://example.com/x", want: true},
		{in: "http://example.com", want: true},
		{in: "HTTPS://EXAMPLE.COM/VIP", want: true},
		{in: "  https://example.com  ", want: true},
		{in: "ftp://example.com", want: false},
		{in: "not a url", want: false},
		{in: "http://a b", want: false},
		{in: "https://", want: false},
		{in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateURL(tt.in))
		})
	}
}

func TestAddGameDialog(t *testing.T) {
	h, api, st := newTestHandler(t, true, 1)
	ctx := context.Background()

	h.HandleUpdate(ctx, nil, callbackUpdate(1, 1, "adm:game:add"))
	assert.Equal(t, askTitleText, api.lastSent(t).Text)

	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "MyGame"))
	assert.Equal(t, askURLText, api.lastSent(t).Text)

	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "https://example.com/vip"))
	assert.Contains(t, api.lastSent(t).Text, "MyGame")
	assert.Contains(t, api.lastSent(t).Text, "added")

	games, err := st.ListGames(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "MyGame", games[0].Title)
	assert.Equal(t, "https://example.com/vip", games[0].URL)

	assert.Empty(t, h.pending, "dialog is closed after the save")
}

func TestAddGameDialogCancel(t *testing.T) {
	h, api, st := newTestHandler(t, true, 1)
	ctx := context.Background()

	h.HandleUpdate(ctx, nil, callbackUpdate(1, 1, "adm:game:add"))
	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "MyGame"))
	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "CANCEL"))

	assert.Equal(t, cancelledText, api.lastSent(t).Text)
	assert.Empty(t, h.pending)

	count, err := st.CountGames(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "cancelled dialog writes nothing")
}

func TestAddGameDialogRejectsBadURL(t *testing.T) {
	h, api, st := newTestHandler(t, true, 1)
	ctx := context.Background()

	h.HandleUpdate(ctx, nil, callbackUpdate(1, 1, "adm:game:add"))
	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "MyGame"))
	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "not a url"))

	assert.Equal(t, badURLText, api.lastSent(t).Text)
	assert.Len(t, h.pending, 1, "dialog stays open for a retry")

	// The retry with a valid link still lands.
	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "https://example.com/vip"))

	count, err := st.CountGames(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEditGameDialog(t *testing.T) {
	h, api, st := newTestHandler(t, true, 1)
	ctx := context.Background()

	id, err := st.AddGame(ctx, "Blox Fruits", "https://example.com/old")
	require.NoError(t, err)

	h.HandleUpdate(ctx, nil, callbackUpdate(1, 1, "adm:game:edit:"+itoa(id)))
	assert.Contains(t, api.lastSent(t).Text, "Blox Fruits")

	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "https://example.com/new"))
	assert.Contains(t, api.lastSent(t).Text, "Link updated")
	assert.Contains(t, api.lastSent(t).Text, "Blox Fruits", "confirmation names the edited game")

	game, err := st.GetGame(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "https://example.com/new", game.URL)
	assert.Empty(t, h.pending)
}

func TestEditGameDialogMissingGame(t *testing.T) {
	h, api, _ := newTestHandler(t, true, 1)

	h.HandleUpdate(context.Background(), nil, callbackUpdate(1, 1, "adm:game:edit:9999"))

	assert.Equal(t, gameNotFoundText, api.lastSent(t).Text)
	assert.Empty(t, h.pending, "no dialog opens for a missing game")
}

func TestPendingTextFromNonAdminIgnored(t *testing.T) {
	h, api, _ := newTestHandler(t, true, 1)

	// User 2 never opened a dialog and is not an admin.
	h.HandleUpdate(context.Background(), nil, textUpdate(2, 2, "MyGame"))

	assert.Empty(t, api.sent)
}

// The client delivers each update on its own goroutine, so two admins
// working their dialogs at the same time must not corrupt the shared
// pending state. Run with -race.
func TestConcurrentDialogs(t *testing.T) {
	h, _, _ := newTestHandler(t, true, 1, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, adminID := range []int64{1, 2} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				h.HandleUpdate(ctx, nil, callbackUpdate(id, id, "adm:game:add"))
				h.HandleUpdate(ctx, nil, textUpdate(id, id, "Some Game"))
				h.HandleUpdate(ctx, nil, textUpdate(id, id, "cancel"))
			}
		}(adminID)
	}
	wg.Wait()

	assert.Empty(t, h.pending, "every dialog ended cancelled")
}

func TestFreshButtonOverwritesOpenDialog(t *testing.T) {
	h, api, st := newTestHandler(t, true, 1)
	ctx := context.Background()

	id, err := st.AddGame(ctx, "Blox Fruits", "https://example.com/old")
	require.NoError(t, err)

	// Open the add dialog, then abandon it by pressing edit.
	h.HandleUpdate(ctx, nil, callbackUpdate(1, 1, "adm:game:add"))
	h.HandleUpdate(ctx, nil, callbackUpdate(1, 1, "adm:game:edit:"+itoa(id)))

	h.HandleUpdate(ctx, nil, textUpdate(1, 1, "https://example.com/new"))
	assert.Contains(t, api.lastSent(t).Text, "Link updated")

	count, err := st.CountGames(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "the abandoned add flow created nothing")
}
