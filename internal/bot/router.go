package bot

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/thespike/vip-link-bot/internal/logger"
	"github.com/thespike/vip-link-bot/internal/store"
)

// HandleUpdate is the bot's default update handler. The platform delivers
// one update at a time; everything downstream is plain request/response.
func (h *Handler) HandleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update == nil {
		return
	}

	switch {
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *models.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}

	// Every inbound text is recorded before any gating.
	h.recordInteraction(ctx, msg.From, store.EventKindMessage, msg.Text)

	if cmd, ok := commandName(msg.Text); ok {
		h.dispatchCommand(ctx, cmd, msg)
		return
	}

	h.handlePendingText(ctx, msg)
}

func (h *Handler) dispatchCommand(ctx context.Context, cmd string, msg *models.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	prompt, known := subscribePrompts[cmd]
	if !known {
		logger.Debug("ignoring unknown command", logger.Fields{
			"command": cmd,
			"user_id": userID,
		})
		return
	}

	if !h.gate.IsSubscribed(ctx, userID) {
		h.send(ctx, chatID, prompt, h.subscribeKeyboard())
		return
	}

	if !h.cooldown.Allow(userID) {
		logger.IncrCounter("cooldown.dropped")
		return
	}

	logger.IncrCounter("commands." + cmd)

	switch cmd {
	case "start":
		h.cmdStart(ctx, chatID)
	case "links":
		h.cmdLinks(ctx, chatID)
	case "admin":
		if !h.isAdmin(userID) {
			h.send(ctx, chatID, adminsOnlyText, nil)
			return
		}
		h.cmdAdmin(ctx, chatID)
	}
}

// recordInteraction upserts the actor and appends an event row. Failures
// are logged and swallowed so the user still gets a response.
func (h *Handler) recordInteraction(ctx context.Context, from *models.User, kind, content string) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := h.store.UpsertUser(ctx, from.ID, from.Username, from.FirstName, from.LastName); err != nil {
		logger.Error("user upsert failed", logger.Fields{"user_id": from.ID}, err)
	}
	if err := h.store.LogEvent(ctx, from.ID, kind, content); err != nil {
		logger.Error("event log failed", logger.Fields{"user_id": from.ID}, err)
	}
}

func (h *Handler) send(ctx context.Context, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := h.api.SendMessage(ctx, params); err != nil {
		logger.Error("sending message failed", logger.Fields{"chat_id": chatID}, err)
	}
}

func (h *Handler) answer(ctx context.Context, callbackID, text string) {
	params := &bot.AnswerCallbackQueryParams{CallbackQueryID: callbackID}
	if text != "" {
		params.Text = text
	}
	if _, err := h.api.AnswerCallbackQuery(ctx, params); err != nil {
		logger.Error("answering callback failed", nil, err)
	}
}

// commandName extracts the command from "/name", "/name args" or
// "/name@botname", lowercased. ok is false for non-command text.
func commandName(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	name := strings.TrimPrefix(text, "/")
	if idx := strings.IndexByte(name, ' '); idx >= 0 {
		name = name[:idx]
	}
	if idx := strings.IndexByte(name, '@'); idx >= 0 {
		name = name[:idx]
	}
	if name == "" {
		return "", false
	}

	return strings.ToLower(name), true
}
