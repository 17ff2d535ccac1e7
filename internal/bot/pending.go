package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/thespike/vip-link-bot/internal/logger"
)

// pendingKind tags an open multi-step admin dialog.
type pendingKind int

const (
	pendingAddGameTitle pendingKind = iota + 1
	pendingAddGameURL
	pendingEditGameURL
)

// pendingAction is one admin's open dialog. For adds, title is set once
// step one has captured it; for edits, gameID and title are set when the
// dialog opens.
type pendingAction struct {
	kind   pendingKind
	title  string
	gameID int64
}

var urlPattern = regexp.MustCompile(`(?i)^https?://\S+$`)

// ValidateURL accepts a trimmed http(s) URL with no embedded whitespace.
func ValidateURL(s string) bool {
	return urlPattern.MatchString(strings.TrimSpace(s))
}

func (h *Handler) setPending(userID int64, a pendingAction) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	h.pending[userID] = a
}

func (h *Handler) getPending(userID int64) (pendingAction, bool) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	a, ok := h.pending[userID]
	return a, ok
}

func (h *Handler) clearPending(userID int64) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	delete(h.pending, userID)
}

// handlePendingText consumes plain text while an admin has an open dialog.
// Text from non-admins, or with no dialog open, has already been logged
// and is ignored here.
func (h *Handler) handlePendingText(ctx context.Context, msg *models.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	state, ok := h.getPending(userID)
	if !ok || !h.isAdmin(userID) {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if strings.EqualFold(text, "cancel") {
		h.clearPending(userID)
		h.send(ctx, chatID, cancelledText, nil)
		return
	}

	switch state.kind {
	case pendingAddGameTitle:
		h.setPending(userID, pendingAction{kind: pendingAddGameURL, title: text})
		h.send(ctx, chatID, askURLText, nil)

	case pendingAddGameURL:
		if !ValidateURL(text) {
			h.send(ctx, chatID, badURLText, nil)
			return
		}
		h.finishAddGame(ctx, chatID, userID, state.title, text)

	case pendingEditGameURL:
		if !ValidateURL(text) {
			h.send(ctx, chatID, badURLText, nil)
			return
		}
		h.finishEditGame(ctx, chatID, userID, state, text)
	}
}

func (h *Handler) finishAddGame(ctx context.Context, chatID, userID int64, title, url string) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	id, err := h.store.AddGame(sctx, title, url)
	if err != nil {
		// Keep the dialog open so the admin can resend or cancel.
		logger.Error("adding game failed", logger.Fields{"title": title}, err)
		h.send(ctx, chatID, saveFailedText, nil)
		return
	}
	h.clearPending(userID)

	logger.Info("game added", logger.Fields{"game_id": id, "admin": userID})

	kb, kbErr := h.adminGamesKeyboard(ctx, 0)
	if kbErr != nil {
		logger.Error("loading games page failed", nil, kbErr)
	}
	h.send(ctx, chatID, fmt.Sprintf("✅ Game <b>%s</b> added (id=%d).", escape(title), id), kb)
}

func (h *Handler) finishEditGame(ctx context.Context, chatID, userID int64, state pendingAction, url string) {
	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := h.store.UpdateGameURL(sctx, state.gameID, url); err != nil {
		logger.Error("updating game url failed", logger.Fields{"game_id": state.gameID}, err)
		h.send(ctx, chatID, saveFailedText, nil)
		return
	}
	h.clearPending(userID)

	// The title was captured when the dialog opened; a game created with
	// an empty title still gets an identifiable confirmation.
	title := state.title
	if title == "" {
		title = fmt.Sprintf("game %d", state.gameID)
	}

	logger.Info("game link updated", logger.Fields{"game_id": state.gameID, "admin": userID})

	kb, kbErr := h.adminGamesKeyboard(ctx, 0)
	if kbErr != nil {
		logger.Error("loading games page failed", nil, kbErr)
	}
	h.send(ctx, chatID, fmt.Sprintf("✅ Link updated for <b>%s</b>.", escape(title)), kb)
}
