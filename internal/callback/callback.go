// Package callback encodes and decodes the opaque payload strings carried
// by inline keyboard buttons.
//
// The wire format matches the original deployment so buttons on messages
// sent before an upgrade keep working: "g:<id>", "about", "list_all",
// "back_main", "sub:check", "adm:root", "adm:games:<page>", "adm:game:add",
// "adm:game:edit:<id>", "adm:users:<page>", "adm:user:<tgid>:<page>".
// Payloads are decoded once at the router boundary; anything unrecognized
// decodes to an error and is dropped there.
package callback

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a decoded button action.
type Kind int

const (
	KindUnknown Kind = iota
	KindGame
	KindAbout
	KindListAll
	KindBackMain
	KindSubCheck
	KindAdminRoot
	KindAdminGames
	KindAdminAddGame
	KindAdminEditGame
	KindAdminUsers
	KindAdminUserLog
)

// AdminOnly reports whether the action belongs to the admin panel.
func (k Kind) AdminOnly() bool {
	switch k {
	case KindAdminRoot, KindAdminGames, KindAdminAddGame, KindAdminEditGame, KindAdminUsers, KindAdminUserLog:
		return true
	default:
		return false
	}
}

// Action is a decoded button press. Only the fields relevant to the Kind
// are populated.
type Action struct {
	Kind   Kind
	GameID int64 // KindGame, KindAdminEditGame
	UserID int64 // KindAdminUserLog
	Page   int   // KindAdminGames, KindAdminUsers, KindAdminUserLog
}

// Decode parses a raw callback payload into an Action.
func Decode(data string) (Action, error) {
	switch data {
	case "about":
		return Action{Kind: KindAbout}, nil
	case "list_all":
		return Action{Kind: KindListAll}, nil
	case "back_main":
		return Action{Kind: KindBackMain}, nil
	case "sub:check":
		return Action{Kind: KindSubCheck}, nil
	case "adm:root":
		return Action{Kind: KindAdminRoot}, nil
	case "adm:game:add":
		return Action{Kind: KindAdminAddGame}, nil
	}

	parts := strings.Split(data, ":")
	switch {
	case len(parts) == 2 && parts[0] == "g":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("bad game id in %q", data)
		}
		return Action{Kind: KindGame, GameID: id}, nil

	case len(parts) == 3 && parts[0] == "adm" && parts[1] == "games":
		page, err := parsePage(parts[2])
		if err != nil {
			return Action{}, fmt.Errorf("bad page in %q", data)
		}
		return Action{Kind: KindAdminGames, Page: page}, nil

	case len(parts) == 3 && parts[0] == "adm" && parts[1] == "users":
		page, err := parsePage(parts[2])
		if err != nil {
			return Action{}, fmt.Errorf("bad page in %q", data)
		}
		return Action{Kind: KindAdminUsers, Page: page}, nil

	case len(parts) == 4 && parts[0] == "adm" && parts[1] == "game" && parts[2] == "edit":
		id, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("bad game id in %q", data)
		}
		return Action{Kind: KindAdminEditGame, GameID: id}, nil

	case len(parts) == 4 && parts[0] == "adm" && parts[1] == "user":
		userID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("bad user id in %q", data)
		}
		page, err := parsePage(parts[3])
		if err != nil {
			return Action{}, fmt.Errorf("bad page in %q", data)
		}
		return Action{Kind: KindAdminUserLog, UserID: userID, Page: page}, nil
	}

	return Action{}, fmt.Errorf("unrecognized callback payload %q", data)
}

func parsePage(s string) (int, error) {
	page, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if page < 0 {
		return 0, fmt.Errorf("negative page %d", page)
	}
	return page, nil
}

// Encoders for each payload shape. Keyboard builders use these instead of
// formatting strings inline so the format lives in one place.

// Game encodes a game-select payload.
func Game(id int64) string { return fmt.Sprintf("g:%d", id) }

// About encodes the informational payload.
func About() string { return "about" }

// ListAll encodes the all-links payload.
func ListAll() string { return "list_all" }

// BackMain encodes the back-to-main-menu payload.
func BackMain() string { return "back_main" }

// SubCheck encodes the subscription-recheck payload.
func SubCheck() string { return "sub:check" }

// AdminRoot encodes the admin panel root payload.
func AdminRoot() string { return "adm:root" }

// AdminGames encodes an admin games page payload.
func AdminGames(page int) string { return fmt.Sprintf("adm:games:%d", page) }

// AdminAddGame encodes the add-game payload.
func AdminAddGame() string { return "adm:game:add" }

// AdminEditGame encodes an edit-game payload.
func AdminEditGame(id int64) string { return fmt.Sprintf("adm:game:edit:%d", id) }

// AdminUsers encodes an admin users page payload.
func AdminUsers(page int) string { return fmt.Sprintf("adm:users:%d", page) }

// AdminUserLog encodes a per-user event log page payload.
func AdminUserLog(userID int64, page int) string {
	return fmt.Sprintf("adm:user:%d:%d", userID, page)
}
