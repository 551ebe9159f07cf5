package handlers

import (
	"github.com/abiiranathan/rex"
)

// User represents a signed-in user.
type User struct {
	ID   uint
	Name string
}

// Handler holds service dependencies.
type Handler struct {
	loc *Localizer
}

// NewHandler creates the demo handler.
func NewHandler(loc *Localizer) *Handler {
	return &Handler{loc: loc}
}

// getAuthUser returns the logged in user.
func getAuthUser(userID uint) *User {
	return &User{ID: userID, Name: "Jane"}
}

// countUnread returns the number of unread emails for a user.
func countUnread(userID uint) int {
	return int(userID % 5)
}

// RenderInbox renders the inbox page with localized chrome.
func (h *Handler) RenderInbox() rex.HandlerFunc {
	return func(c *rex.Context) error {
		userID := c.ParamUint("user_id")
		user := getAuthUser(userID)
		unread := countUnread(userID)

		// Every Localize call below is verified against i18n/en/sample.ftl
		// at build time. Try misspelling "welcome" or dropping the "name"
		// argument.
		return c.Render("views/inbox.html", rex.Map{
			"title":            h.loc.Localize("app-title"),
			"greeting":         h.loc.Localize("welcome", Args{"name": user.Name}),
			"unread":           h.loc.Localize("unread-emails", Args{"count": unread}),
			"loginPlaceholder": h.loc.Localize("login-input.placeholder"),
		})
	}
}

// RenderSettings renders the settings page. The argument map here is built
// at runtime, so the checker only verifies that the message id exists.
func (h *Handler) RenderSettings(extra Args) rex.HandlerFunc {
	return func(c *rex.Context) error {
		return c.Render("views/settings.html", rex.Map{
			"title":  h.loc.Localize("settings-title"),
			"footer": h.loc.Localize("footer-note", extra),
		})
	}
}
