// Package gate implements the mandatory channel-subscription check.
package gate

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/thespike/vip-link-bot/internal/logger"
)

const lookupTimeout = 3 * time.Second

// MemberChecker is the slice of the Bot API the gate needs. *bot.Bot
// satisfies it.
type MemberChecker interface {
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
}

// Gate answers whether a user currently belongs to the required channel.
// Lookups are fail-closed: any error counts as not subscribed.
type Gate struct {
	api     MemberChecker
	channel string
}

// New creates a gate for the given channel (e.g. "@thespikeacc"). For
// private or restricted channels the bot must be a channel admin.
func New(api MemberChecker, channel string) *Gate {
	return &Gate{api: api, channel: channel}
}

// IsSubscribed reports whether the user is a member, administrator or owner
// of the channel. Errors are logged and treated as "not subscribed".
func (g *Gate) IsSubscribed(ctx context.Context, userID int64) bool {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	member, err := g.api.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: g.channel,
		UserID: userID,
	})
	if err != nil {
		logger.Error("subscription check failed", logger.Fields{
			"user_id": userID,
			"channel": g.channel,
		}, err)
		return false
	}

	switch member.Type {
	case models.ChatMemberTypeMember, models.ChatMemberTypeAdministrator, models.ChatMemberTypeOwner:
		return true
	default:
		return false
	}
}
