package tgclient

import (
	"fmt"
	"strings"

	"github.com/gotd/td/tg"
)

// AccountName describes the logged in account for login and logout messages,
// e.g. "Alice Liddell (@alice)". Accounts without a name fall back to their ID.
func AccountName(user *tg.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	switch {
	case name != "" && user.Username != "":
		return fmt.Sprintf("%s (@%s)", name, user.Username)
	case user.Username != "":
		return "@" + user.Username
	case name != "":
		return name
	default:
		return fmt.Sprintf("user %d", user.ID)
	}
}
