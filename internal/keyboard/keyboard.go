// Package keyboard builds the bot's inline keyboards. All builders are pure
// functions over page data fetched by the caller; pagination controls follow
// one rule everywhere: "Next" appears iff offset+pageSize < total, "Previous"
// iff page > 0.
package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/thespike/vip-link-bot/internal/callback"
	"github.com/thespike/vip-link-bot/internal/store"
)

// Page sizes per list type.
const (
	GamesPageSize  = 10
	UsersPageSize  = 10
	EventsPageSize = 20
)

// MainMenu lists the catalog two games per row, then About / All links.
func MainMenu(games []store.Game) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for _, g := range games {
		row = append(row, models.InlineKeyboardButton{
			Text:         g.Title,
			CallbackData: callback.Game(g.ID),
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "ℹ️ About", CallbackData: callback.About()},
		{Text: "🧾 All links", CallbackData: callback.ListAll()},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Links renders one url-button per game that has a link, plus Back.
func Links(games []store.Game) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, g := range games {
		if !g.HasURL() {
			continue
		}
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🔗 " + g.Title, URL: g.URL},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ Back", CallbackData: callback.BackMain()},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Subscribe offers the channel link and a recheck button.
func Subscribe(channelLink string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "✅ Subscribe", URL: channelLink}},
		{{Text: "🔄 I've subscribed", CallbackData: callback.SubCheck()}},
	}}
}

// AdminRoot is the admin panel landing keyboard.
func AdminRoot() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{
			{Text: "🎮 Games", CallbackData: callback.AdminGames(0)},
			{Text: "📊 Users", CallbackData: callback.AdminUsers(0)},
		},
		{{Text: "⬅️ Main menu", CallbackData: callback.BackMain()}},
	}}
}

// AdminGames lists one edit-button per game on the page, pagination, an
// add-game button and a link back to the panel root.
func AdminGames(games []store.Game, page int, total int64) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, g := range games {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "✏️ " + g.Title, CallbackData: callback.AdminEditGame(g.ID)},
		})
	}
	if nav := pageNav(page, GamesPageSize, total, callback.AdminGames); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{{Text: "➕ Add game", CallbackData: callback.AdminAddGame()}},
		[]models.InlineKeyboardButton{{Text: "🏠 Admin panel", CallbackData: callback.AdminRoot()}},
	)
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// AdminUsers lists one entry per user with their action count, plus
// pagination and the panel root link.
func AdminUsers(users []store.UserWithActions, page int, total int64) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, u := range users {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf("👤 %s • actions: %d", u.DisplayName(), u.ActionCount),
			CallbackData: callback.AdminUserLog(u.TelegramID, 0),
		}})
	}
	if nav := pageNav(page, UsersPageSize, total, callback.AdminUsers); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "🏠 Admin panel", CallbackData: callback.AdminRoot()},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// AdminUserLog paginates one user's event log.
func AdminUserLog(telegramID int64, page int, total int64) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	nav := pageNav(page, EventsPageSize, total, func(p int) string {
		return callback.AdminUserLog(telegramID, p)
	})
	if nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{{Text: "📋 Back to users", CallbackData: callback.AdminUsers(0)}},
		[]models.InlineKeyboardButton{{Text: "🏠 Admin panel", CallbackData: callback.AdminRoot()}},
	)
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// pageNav builds the Previous/Next row, or nil when neither applies.
func pageNav(page, pageSize int, total int64, data func(page int) string) []models.InlineKeyboardButton {
	var nav []models.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, models.InlineKeyboardButton{
			Text:         "⬅️ Previous",
			CallbackData: data(page - 1),
		})
	}
	if int64((page+1)*pageSize) < total {
		nav = append(nav, models.InlineKeyboardButton{
			Text:         "➡️ Next",
			CallbackData: data(page + 1),
		})
	}
	return nav
}
