package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rosterhq/roster/internal/logging"
	"github.com/rosterhq/roster/internal/prefs"
	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/user"
)

const logTailLines = 200

// ---- home ----

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "l":
		if !m.loggedIn() {
			m.dispatcher.Transition(PathLogin)
		}
	case "r":
		if !m.loggedIn() {
			m.dispatcher.Transition(PathRegister)
		}
	case "f":
		if !m.loggedIn() {
			m.dispatcher.Transition(PathPasswordReset)
		}
	case "e":
		if m.loggedIn() {
			m.dispatcher.Transition(PathAccount)
		}
	case "p":
		if m.loggedIn() {
			m.dispatcher.Transition(PathPreferences)
		}
	case "a":
		if m.loggedIn() && m.snapshot.Records.Current.HasRole(user.RoleAdmin) {
			m.dispatcher.ListUsers(m.ctx, "", PathAdmin)
		}
	case "o":
		if m.loggedIn() {
			m.dispatcher.LogoutUser(m.ctx)
		}
	case "T":
		m.cycleTheme()
	case "g":
		m.view = ViewDebugLog
		return m, m.loadLogTail()
	}
	return m, nil
}

func (m Model) viewHome() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Logo.Render("roster"))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render("account management"))
	b.WriteString("\n\n")

	cur := m.snapshot.Records.Current
	if m.loggedIn() {
		name := cur.Field(user.FieldFirstName)
		if name == "" {
			name = cur.Username()
		}
		b.WriteString(styles.Text.Render("Signed in as "))
		b.WriteString(styles.AccentText.Render(cur.Username()))
		if name != cur.Username() {
			b.WriteString(styles.MutedText.Render(" (" + name + ")"))
		}
		b.WriteString("\n\n")
		b.WriteString(menuLine(styles, "e", "Edit account"))
		b.WriteString(menuLine(styles, "p", "Preferences"))
		if cur.HasRole(user.RoleAdmin) {
			b.WriteString(menuLine(styles, "a", "Administer users"))
		}
		b.WriteString(menuLine(styles, "o", "Log out"))
	} else {
		b.WriteString(styles.Text.Render("Welcome. Sign in or create an account."))
		b.WriteString("\n\n")
		b.WriteString(menuLine(styles, "l", "Log in"))
		b.WriteString(menuLine(styles, "r", "Register"))
		b.WriteString(menuLine(styles, "f", "Forgot password"))
	}
	b.WriteString(menuLine(styles, "g", "Client log"))
	b.WriteString(menuLine(styles, "T", "Theme: "+m.theme.Name))
	b.WriteString(menuLine(styles, "q", "Quit"))

	return styles.Panel.Render(b.String())
}

func menuLine(styles Styles, key, desc string) string {
	return styles.AccentText.Render(key) + " " + styles.Text.Render(desc) + "\n"
}

// ---- login ----

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dispatcher.Transition(PathHome)
		return m, nil
	case "tab", "down":
		m.login.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.login.cycle(-1)
		return m, nil
	case "enter":
		m.rememberUsername(m.login.value(user.FieldUsername))
		m.dispatcher.LoginUser(m.ctx, PathHome)
		return m, nil
	}
	return m, m.login.update(msg, m.dispatcher)
}

// rememberUsername persists the username for prefill on the next start.
func (m Model) rememberUsername(username string) {
	if username == "" {
		return
	}
	p, _ := prefs.Load(m.prefsPath)
	if p.Username == username {
		return
	}
	p.Username = username
	_ = prefs.Save(m.prefsPath, p)
}

func (m Model) viewLogin() string {
	styles := m.theme.Styles()
	body := styles.Title.Render("Log in") + "\n\n" +
		m.login.view(styles) + "\n\n" +
		styles.FaintText.Render("enter submit · tab next · esc back")
	return styles.Panel.Render(body)
}

// ---- register ----

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dispatcher.Transition(PathHome)
		return m, nil
	case "tab", "down":
		m.register.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.register.cycle(-1)
		return m, nil
	case "enter":
		// The challenge-response check only applies to the web client, so
		// registration here gates on the individual field validators.
		cur := m.snapshot.Records.Current
		if !cur.UsernameValid() || !cur.EmailValid() || !cur.PhoneValid() || !cur.PasswordValid() {
			m.dispatcher.SetMessage("Please complete every field; passwords need 8-20 characters with a digit and a symbol", state.MessageError)
			return m, nil
		}
		m.dispatcher.RegisterUser(m.ctx, PathLogin)
		return m, nil
	}
	return m, m.register.update(msg, m.dispatcher)
}

func (m Model) viewRegister() string {
	styles := m.theme.Styles()
	body := styles.Title.Render("Create account") + "\n\n" +
		m.register.view(styles) + "\n\n" +
		styles.FaintText.Render("enter submit · tab next · esc back")
	return styles.Panel.Render(body)
}

// ---- account ----

func (m Model) updateAccount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dispatcher.Transition(PathHome)
		return m, nil
	case "tab", "down":
		m.account.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.account.cycle(-1)
		return m, nil
	case "enter":
		cur := m.snapshot.Records.Current
		if !cur.EditUserValid() {
			m.dispatcher.SetMessage("Please check your details; your current password is required to save", state.MessageError)
			return m, nil
		}
		m.dispatcher.UpdateUser(m.ctx, cur, PathHome)
		return m, nil
	}
	return m, m.account.update(msg, m.dispatcher)
}

func (m Model) viewAccount() string {
	styles := m.theme.Styles()
	title := "Edit account"
	if m.snapshot.Records.Current.Meta().Dirty {
		title += " " + styles.WarningText.Render("(unsaved)")
	}
	body := styles.Title.Render(title) + "\n\n" +
		m.account.view(styles) + "\n\n" +
		styles.FaintText.Render("enter save · tab next · esc back")
	return styles.Panel.Render(body)
}

// ---- preferences ----

func (m Model) updatePreferences(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dispatcher.Transition(PathHome)
	case "T":
		m.cycleTheme()
		if m.loggedIn() {
			m.dispatcher.EditUserField("preferences.theme", m.theme.Name)
		}
	case "s":
		cur := m.snapshot.Records.Current
		if cur.Meta().Dirty {
			m.dispatcher.UpdateUser(m.ctx, cur, "")
		}
	}
	return m, nil
}

func (m Model) viewPreferences() string {
	styles := m.theme.Styles()
	cur := m.snapshot.Records.Current

	var b strings.Builder
	b.WriteString(styles.Title.Render("Preferences"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Theme"))
	b.WriteString("  ")
	b.WriteString(styles.Text.Render(m.theme.Name))
	b.WriteString("\n\n")

	if prefsMap := cur.Preferences(); len(prefsMap) > 0 {
		b.WriteString(styles.MutedText.Render("Account preferences"))
		b.WriteString("\n")
		for _, key := range sortedKeys(prefsMap) {
			b.WriteString(fmt.Sprintf("  %s = %s\n",
				styles.Text.Render(key), styles.AccentText.Render(prefsMap[key])))
		}
		b.WriteString("\n")
	}

	hint := "T cycle theme · esc back"
	if cur.Meta().Dirty {
		hint = "T cycle theme · s save to account · esc back"
	}
	b.WriteString(styles.FaintText.Render(hint))
	return styles.Panel.Render(b.String())
}

// ---- password reset ----

func (m Model) updateReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dispatcher.Transition(PathHome)
		return m, nil
	case "tab", "down":
		m.reset.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.reset.cycle(-1)
		return m, nil
	case "enter":
		if !m.reset.codeSent {
			if !user.EmailStringValid(m.reset.email()) {
				m.dispatcher.SetMessage("Please enter a valid email address", state.MessageError)
				return m, nil
			}
			m.dispatcher.StartPasswordReset(m.ctx, m.reset.email())
			m.reset.codeSent = true
			m.reset.setFocus(1)
			return m, nil
		}
		if !user.ResetCodeValid(m.reset.code()) {
			m.dispatcher.SetMessage("The reset code is 6 digits", state.MessageError)
			return m, nil
		}
		if !user.PasswordStringValid(m.reset.password()) {
			m.dispatcher.SetMessage("Passwords need 8-20 characters with a digit and a symbol", state.MessageError)
			return m, nil
		}
		m.dispatcher.FinishPasswordReset(m.ctx, m.reset.email(), m.reset.code(), m.reset.password(), PathLogin)
		return m, nil
	}
	return m, m.reset.update(msg, m.dispatcher)
}

func (m Model) viewReset() string {
	styles := m.theme.Styles()
	step := "Step 1 of 2: request a reset code"
	if m.reset.codeSent {
		step = "Step 2 of 2: redeem the code"
	}
	body := styles.Title.Render("Password reset") + "\n" +
		styles.MutedText.Render(step) + "\n\n" +
		m.reset.view(styles) + "\n\n" +
		styles.FaintText.Render("enter submit · tab next · esc back")
	return styles.Panel.Render(body)
}

// ---- debug log ----

func (m Model) loadLogTail() tea.Cmd {
	if m.cfg == nil {
		return nil
	}
	path := m.cfg.LogFile
	return func() tea.Msg {
		lines, err := logging.Tail(path, logTailLines)
		if err != nil {
			return logLinesMsg{err.Error()}
		}
		return logLinesMsg(lines)
	}
}

func (m Model) updateDebugLog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.view = ViewHome
		return m, nil
	case "r":
		return m, m.loadLogTail()
	}
	return m, nil
}

func (m Model) viewDebugLog() string {
	styles := m.theme.Styles()
	lines := m.logLines
	visible := m.height - 6
	if visible > 0 && len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	body := styles.Title.Render("Client log") + "\n\n"
	if len(lines) == 0 {
		body += styles.MutedText.Render("log is empty")
	} else {
		body += styles.FaintText.Render(strings.Join(lines, "\n"))
	}
	return body
}
