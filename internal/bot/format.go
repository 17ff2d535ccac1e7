package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/thespike/vip-link-bot/internal/store"
)

// Outbound message texts. Messages use HTML parse mode; anything
// user-supplied goes through escape first.
const (
	greetingText           = "<b>Hi!</b>\nPick a game below 👇"
	pickGameText           = "Pick a game below 👇"
	aboutText              = "This bot hands out VIP links to Roblox servers (private rooms for playing with friends)."
	allLinksText           = "<b>Links for all games:</b>"
	noLinksText            = "⚠️ No links are set yet."
	gameNoLinkText         = "⚠️ No link is set for this game yet."
	gameNotFoundText       = "Game not found."
	catalogErrorText       = "⚠️ Something went wrong, try again later."
	adminRootText          = "<b>Admin panel</b> — pick a section:"
	adminGamesText         = "<b>🎮 Games</b>"
	adminUsersText         = "<b>📊 Users</b>"
	adminsOnlyText         = "⛔ This command is for administrators only."
	adminsOnlyShortText    = "Admins only"
	emptyLogText           = "The log is empty."
	askTitleText           = "🆕 Send the <b>game title</b>:\n(or send <code>cancel</code>)"
	askURLText             = "🔗 Now send the <b>link</b> (URL) to the VIP/private server for this game:\n(or <code>cancel</code>)"
	badURLText             = "❌ That does not look like a link. Send a valid URL or <code>cancel</code>."
	cancelledText          = "❎ Action cancelled."
	saveFailedText         = "⚠️ Could not save that, try again."
	accessGrantedText      = "✅ Great! Access granted."
	stillNotSubscribedText = "❌ You are still not subscribed. Please subscribe and try again."
	subscribeGenericText   = "🚫 You need to subscribe to our channel to use this bot!"
)

// subscribePrompts doubles as the set of known commands.
var subscribePrompts = map[string]string{
	"start": "🚫 You need to subscribe to our channel to use this bot!",
	"links": "🚫 You need to subscribe to the channel to use this command!",
	"admin": "🚫 You need to subscribe to the channel to access the admin panel!",
}

func escape(s string) string {
	return html.EscapeString(s)
}

func countLinked(games []store.Game) int {
	n := 0
	for _, g := range games {
		if g.HasURL() {
			n++
		}
	}
	return n
}

// formatUserLog renders one page of a user's event log, newest first.
func formatUserLog(telegramID, total int64, events []store.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Log for user %d</b> (%d total):", telegramID, total)
	for _, e := range events {
		fmt.Fprintf(&sb, "\n• [%s] <i>%s</i>: %s",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			escape(e.Type),
			escape(e.Content),
		)
	}
	return sb.String()
}
