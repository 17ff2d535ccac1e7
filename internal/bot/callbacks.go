package bot

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/thespike/vip-link-bot/internal/callback"
	"github.com/thespike/vip-link-bot/internal/keyboard"
	"github.com/thespike/vip-link-bot/internal/logger"
	"github.com/thespike/vip-link-bot/internal/store"
)

func (h *Handler) handleCallback(ctx context.Context, cb *models.CallbackQuery) {
	// Clicks are recorded unconditionally; only the response is gated.
	h.recordInteraction(ctx, &cb.From, store.EventKindCallback, cb.Data)

	action, err := callback.Decode(cb.Data)
	if err != nil {
		h.answer(ctx, cb.ID, "")
		logger.Warn("dropping unrecognized callback", logger.Fields{
			"data":    cb.Data,
			"user_id": cb.From.ID,
		})
		return
	}

	userID := cb.From.ID
	chatID := callbackChatID(cb)
	if chatID == 0 {
		h.answer(ctx, cb.ID, "")
		return
	}

	// Purely informational actions and the recheck itself bypass the gate.
	switch action.Kind {
	case callback.KindAbout:
		h.answer(ctx, cb.ID, "")
		h.send(ctx, chatID, aboutText, nil)
		return
	case callback.KindSubCheck:
		h.answer(ctx, cb.ID, "")
		h.cbSubCheck(ctx, chatID, userID)
		return
	}

	if !h.gate.IsSubscribed(ctx, userID) {
		h.answer(ctx, cb.ID, "")
		h.send(ctx, chatID, subscribeGenericText, h.subscribeKeyboard())
		return
	}

	if !h.cooldown.Allow(userID) {
		h.answer(ctx, cb.ID, "")
		logger.IncrCounter("cooldown.dropped")
		return
	}

	if action.Kind.AdminOnly() && !h.isAdmin(userID) {
		h.answer(ctx, cb.ID, adminsOnlyShortText)
		logger.IncrCounter("callbacks.denied")
		return
	}

	h.answer(ctx, cb.ID, "")
	logger.IncrCounter("callbacks.handled")

	switch action.Kind {
	case callback.KindGame:
		h.cbGame(ctx, chatID, action.GameID)
	case callback.KindListAll:
		h.cmdLinks(ctx, chatID)
	case callback.KindBackMain:
		h.cbBackMain(ctx, chatID, callbackMessageID(cb))
	case callback.KindAdminRoot:
		h.send(ctx, chatID, adminRootText, keyboard.AdminRoot())
	case callback.KindAdminGames:
		h.cbAdminGames(ctx, chatID, action.Page)
	case callback.KindAdminAddGame:
		h.cbAdminAddGame(ctx, chatID, userID)
	case callback.KindAdminEditGame:
		h.cbAdminEditGame(ctx, chatID, userID, action.GameID)
	case callback.KindAdminUsers:
		h.cbAdminUsers(ctx, chatID, action.Page)
	case callback.KindAdminUserLog:
		h.cbAdminUserLog(ctx, chatID, action.UserID, action.Page)
	}
}

func (h *Handler) cbSubCheck(ctx context.Context, chatID, userID int64) {
	if !h.gate.IsSubscribed(ctx, userID) {
		h.send(ctx, chatID, stillNotSubscribedText, h.subscribeKeyboard())
		return
	}

	kb, err := h.mainMenuKeyboard(ctx)
	if err != nil {
		logger.Error("loading main menu failed", logger.Fields{"chat_id": chatID}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}
	h.send(ctx, chatID, accessGrantedText, kb)
}

func (h *Handler) cbGame(ctx context.Context, chatID, gameID int64) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	game, err := h.store.GetGame(sctx, gameID)
	if err != nil {
		logger.Error("fetching game failed", logger.Fields{"game_id": gameID}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}

	if game == nil || !game.HasURL() {
		h.send(ctx, chatID, gameNoLinkText, nil)
		return
	}

	text := fmt.Sprintf("<b>%s</b>\nIf the link does not open, try again later.", escape(game.Title))
	h.send(ctx, chatID, text, keyboard.Links([]store.Game{*game}))
}

// cbBackMain edits the originating message back into the main menu,
// falling back to a fresh message when the edit is rejected (old message,
// identical content, and so on).
func (h *Handler) cbBackMain(ctx context.Context, chatID int64, messageID int) {
	kb, err := h.mainMenuKeyboard(ctx)
	if err != nil {
		logger.Error("loading main menu failed", logger.Fields{"chat_id": chatID}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}

	if messageID != 0 {
		_, err = h.api.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        pickGameText,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err == nil {
			return
		}
		logger.Debug("editing message failed, sending fresh", logger.Fields{
			"chat_id":    chatID,
			"message_id": messageID,
		})
	}

	h.send(ctx, chatID, pickGameText, kb)
}

func (h *Handler) cbAdminGames(ctx context.Context, chatID int64, page int) {
	kb, err := h.adminGamesKeyboard(ctx, page)
	if err != nil {
		logger.Error("loading games page failed", logger.Fields{"page": page}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}
	h.send(ctx, chatID, adminGamesText, kb)
}

func (h *Handler) cbAdminAddGame(ctx context.Context, chatID, userID int64) {
	// A fresh button press overwrites any open dialog for this admin.
	h.setPending(userID, pendingAction{kind: pendingAddGameTitle})
	h.send(ctx, chatID, askTitleText, nil)
}

func (h *Handler) cbAdminEditGame(ctx context.Context, chatID, userID, gameID int64) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	game, err := h.store.GetGame(sctx, gameID)
	if err != nil {
		logger.Error("fetching game failed", logger.Fields{"game_id": gameID}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}
	if game == nil {
		h.send(ctx, chatID, gameNotFoundText, nil)
		return
	}

	h.setPending(userID, pendingAction{kind: pendingEditGameURL, gameID: gameID, title: game.Title})
	text := fmt.Sprintf("✏️ Send the <b>new link</b> for <b>%s</b>:\n(or <code>cancel</code>)", escape(game.Title))
	h.send(ctx, chatID, text, nil)
}

func (h *Handler) cbAdminUsers(ctx context.Context, chatID int64, page int) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	users, err := h.store.ListUsers(sctx, page*keyboard.UsersPageSize, keyboard.UsersPageSize)
	if err != nil {
		logger.Error("listing users failed", logger.Fields{"page": page}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}
	total, err := h.store.CountUsers(sctx)
	if err != nil {
		logger.Error("counting users failed", nil, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}

	h.send(ctx, chatID, adminUsersText, keyboard.AdminUsers(users, page, total))
}

func (h *Handler) cbAdminUserLog(ctx context.Context, chatID, telegramID int64, page int) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	events, err := h.store.ListUserEvents(sctx, telegramID, page*keyboard.EventsPageSize, keyboard.EventsPageSize)
	if err != nil {
		logger.Error("listing user events failed", logger.Fields{"user_id": telegramID}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}

	if len(events) == 0 {
		h.send(ctx, chatID, emptyLogText, nil)
		return
	}

	total, err := h.store.CountUserEvents(sctx, telegramID)
	if err != nil {
		logger.Error("counting user events failed", logger.Fields{"user_id": telegramID}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}

	h.send(ctx, chatID, formatUserLog(telegramID, total, events), keyboard.AdminUserLog(telegramID, page, total))
}

func (h *Handler) adminGamesKeyboard(ctx context.Context, page int) (*models.InlineKeyboardMarkup, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	games, err := h.store.ListGames(ctx, page*keyboard.GamesPageSize, keyboard.GamesPageSize)
	if err != nil {
		return nil, err
	}
	total, err := h.store.CountGames(ctx)
	if err != nil {
		return nil, err
	}
	return keyboard.AdminGames(games, page, total), nil
}

func callbackChatID(cb *models.CallbackQuery) int64 {
	switch cb.Message.Type {
	case models.MaybeInaccessibleMessageTypeMessage:
		if cb.Message.Message == nil {
			return 0
		}
		return cb.Message.Message.Chat.ID
	case models.MaybeInaccessibleMessageTypeInaccessibleMessage:
		if cb.Message.InaccessibleMessage == nil {
			return 0
		}
		return cb.Message.InaccessibleMessage.Chat.ID
	default:
		return 0
	}
}

func callbackMessageID(cb *models.CallbackQuery) int {
	if cb.Message.Type != models.MaybeInaccessibleMessageTypeMessage || cb.Message.Message == nil {
		return 0
	}
	return cb.Message.Message.ID
}
