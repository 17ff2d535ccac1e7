package bot

import (
	"context"

	"github.com/go-telegram/bot/models"

	"github.com/thespike/vip-link-bot/internal/keyboard"
	"github.com/thespike/vip-link-bot/internal/logger"
)

func (h *Handler) cmdStart(ctx context.Context, chatID int64) {
	kb, err := h.mainMenuKeyboard(ctx)
	if err != nil {
		logger.Error("loading main menu failed", logger.Fields{"chat_id": chatID}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}
	h.send(ctx, chatID, greetingText, kb)
}

func (h *Handler) cmdLinks(ctx context.Context, chatID int64) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	games, err := h.store.ListGames(sctx, 0, allLinksLimit)
	if err != nil {
		logger.Error("loading links failed", logger.Fields{"chat_id": chatID}, err)
		h.send(ctx, chatID, catalogErrorText, nil)
		return
	}

	if countLinked(games) == 0 {
		h.send(ctx, chatID, noLinksText, nil)
		return
	}

	h.send(ctx, chatID, allLinksText, keyboard.Links(games))
}

func (h *Handler) cmdAdmin(ctx context.Context, chatID int64) {
	h.send(ctx, chatID, adminRootText, keyboard.AdminRoot())
}

func (h *Handler) mainMenuKeyboard(ctx context.Context) (*models.InlineKeyboardMarkup, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	games, err := h.store.ListGames(ctx, 0, mainMenuLimit)
	if err != nil {
		return nil, err
	}
	return keyboard.MainMenu(games), nil
}

func (h *Handler) subscribeKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.Subscribe(h.channelLink)
}
