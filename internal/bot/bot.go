// Package bot routes inbound Telegram updates to the catalog, admin panel
// and subscription gate.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/thespike/vip-link-bot/internal/config"
	"github.com/thespike/vip-link-bot/internal/gate"
	"github.com/thespike/vip-link-bot/internal/guard"
	"github.com/thespike/vip-link-bot/internal/logger"
	"github.com/thespike/vip-link-bot/internal/store"
)

const (
	// cooldownInterval is the minimum spacing between handled inputs per user.
	cooldownInterval = time.Second

	// storeTimeout bounds every database call made from a handler.
	storeTimeout = 3 * time.Second

	// mainMenuLimit caps how many games the main menu shows.
	mainMenuLimit = 50

	// allLinksLimit caps the "all links" view.
	allLinksLimit = 1000
)

var defaultAllowedUpdates = bot.AllowedUpdates{
	"message",
	"callback_query",
}

// API is the slice of the Bot API the handlers send through. *bot.Bot
// satisfies it; tests substitute a recorder.
type API interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
}

// SubscriptionGate answers whether a user may use gated features.
type SubscriptionGate interface {
	IsSubscribed(ctx context.Context, userID int64) bool
}

// Handler owns all per-process router state: the pending-action slots and
// the cooldown stamps, both keyed by Telegram user id with last-write-wins
// semantics. The client dispatches each update on its own goroutine, so
// pending is guarded by pendingMu.
type Handler struct {
	api         API
	store       *store.Store
	gate        SubscriptionGate
	admins      map[int64]struct{}
	cooldown    *guard.Cooldown
	channelLink string

	pendingMu sync.Mutex
	pending   map[int64]pendingAction
}

// NewHandler creates a router over the given collaborators.
func NewHandler(api API, st *store.Store, g SubscriptionGate, admins map[int64]struct{}, channelLink string) *Handler {
	return &Handler{
		api:         api,
		store:       st,
		gate:        g,
		admins:      admins,
		cooldown:    guard.NewCooldown(cooldownInterval),
		channelLink: channelLink,
		pending:     make(map[int64]pendingAction),
	}
}

func (h *Handler) isAdmin(userID int64) bool {
	_, ok := h.admins[userID]
	return ok
}

// Service is the running bot: a long-polling client with the Handler
// installed as its default update handler.
type Service struct {
	bot *bot.Bot
}

// New wires config and store into a polling client. The subscription gate
// shares the bot's own API client.
func New(cfg *config.Config, st *store.Store) (*Service, error) {
	h := NewHandler(nil, st, nil, cfg.AdminIDSet(), cfg.ChannelLink())

	b, err := bot.New(cfg.BotToken,
		bot.WithDefaultHandler(h.HandleUpdate),
		bot.WithErrorsHandler(pollErrorHandler),
		bot.WithAllowedUpdates(defaultAllowedUpdates),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram client: %w", err)
	}

	h.api = b
	h.gate = gate.New(b, cfg.ChannelUsername)

	return &Service{bot: b}, nil
}

// Start begins receiving updates via long polling until the context is
// canceled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("starting telegram long polling", logger.Fields{
		"allowed_updates": defaultAllowedUpdates,
	})

	s.bot.Start(ctx)

	logger.Info("telegram polling stopped", nil)
}

func pollErrorHandler(err error) {
	if err == nil {
		return
	}
	logger.Error("telegram polling error", nil, err)
}
