package ui

import (
	"fmt"
	"strings"

	"github.com/rosterhq/roster/internal/state"
)

// renderHeader renders the top status bar: session state, in-flight
// indicator and the current user-visible message.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	parts := []string{styles.Logo.Render("roster")}

	cur := m.snapshot.Records.Current
	if m.loggedIn() {
		parts = append(parts, styles.SuccessText.Render("●")+" "+styles.Text.Render(cur.Username()))
	} else {
		parts = append(parts, styles.FaintText.Render("●")+" "+styles.MutedText.Render("anonymous"))
	}

	if m.snapshot.Status.Fetching {
		parts = append(parts, m.spin.View()+styles.MutedText.Render("working"))
	}

	if m.snapshot.Records.HasList {
		parts = append(parts,
			styles.MutedText.Render("users:")+" "+
				styles.Text.Render(fmt.Sprintf("%d", len(m.snapshot.Records.List))))
	}

	if msg := m.snapshot.Status.Message; msg != "" {
		text := truncate(msg, maxMessageWidth(m.width))
		if m.snapshot.Status.MessageType == state.MessageError {
			parts = append(parts, styles.DangerText.Render(text))
		} else {
			parts = append(parts, styles.InfoText.Render(text))
		}
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func maxMessageWidth(width int) int {
	if width <= 0 {
		return 80
	}
	if width < 60 {
		return 30
	}
	return width / 2
}

// renderCommandBar renders the bottom key-hint bar for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.view {
	case ViewLogin, ViewRegister, ViewAccount, ViewPasswordReset:
		commands = []cmd{
			{"enter", "Submit"},
			{"tab", "Next field"},
			{"esc", "Back"},
		}
	case ViewAdmin:
		commands = []cmd{
			{"/", "Search"},
			{"j/k", "Navigate"},
			{"a/t/i", "Toggle role"},
			{"s", "Save"},
			{"d", "Delete"},
			{"esc", "Back"},
		}
	case ViewPreferences:
		commands = []cmd{
			{"T", "Theme"},
			{"s", "Save"},
			{"esc", "Back"},
		}
	case ViewDebugLog:
		commands = []cmd{
			{"r", "Reload"},
			{"esc", "Back"},
		}
	default: // ViewHome
		if m.loggedIn() {
			commands = []cmd{
				{"e", "Account"},
				{"p", "Preferences"},
				{"o", "Log out"},
				{"q", "Quit"},
			}
		} else {
			commands = []cmd{
				{"l", "Log in"},
				{"r", "Register"},
				{"f", "Reset password"},
				{"q", "Quit"},
			}
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+":"+styles.MutedText.Render(c.desc))
	}
	segments = append(segments,
		styles.AccentText.Render("T")+":"+styles.FaintText.Render(m.theme.Name))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
