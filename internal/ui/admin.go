package ui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/user"
)

// adminState holds the user administration view: a search box plus a
// selectable listing of matching accounts. Role toggles and deletes act on
// the selected row; staged role edits are saved per row.
type adminState struct {
	search    textinput.Model
	searching bool
	selected  int
}

func newAdminState() adminState {
	search := textinput.New()
	search.Placeholder = "search users"
	search.Prompt = "/ "
	search.CharLimit = 64
	search.Width = 32
	return adminState{search: search}
}

func (m Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.admin.searching {
		switch msg.String() {
		case "enter":
			m.admin.searching = false
			m.admin.search.Blur()
			m.admin.selected = 0
			m.dispatcher.ListUsers(m.ctx, m.admin.search.Value(), "")
			return m, nil
		case "esc":
			m.admin.searching = false
			m.admin.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.admin.search, cmd = m.admin.search.Update(msg)
		return m, cmd
	}

	list := m.snapshot.Records.List
	switch msg.String() {
	case "esc", "q":
		m.dispatcher.Transition(PathHome)
	case "/":
		m.admin.searching = true
		return m, m.admin.search.Focus()
	case "j", "down":
		if m.admin.selected < len(list)-1 {
			m.admin.selected++
		}
	case "k", "up":
		if m.admin.selected > 0 {
			m.admin.selected--
		}
	case "g":
		m.admin.selected = 0
	case "G":
		if len(list) > 0 {
			m.admin.selected = len(list) - 1
		}
	case "r":
		m.dispatcher.ListUsers(m.ctx, m.admin.search.Value(), "")
	case "a":
		m.toggleSelectedRole(user.RoleAdmin)
	case "t":
		m.toggleSelectedRole(user.RoleTemplateEdit)
	case "i":
		m.toggleSelectedRole(user.RoleInterviewEdit)
	case "s":
		if sel, ok := m.selectedUser(); ok {
			m.dispatcher.UpdateUser(m.ctx, sel, "")
		}
	case "d":
		if sel, ok := m.selectedUser(); ok {
			if sel.ID() == m.snapshot.Records.Current.ID() {
				m.dispatcher.SetMessage("You cannot delete the account you are signed in with", state.MessageError)
				return m, nil
			}
			m.dispatcher.DeleteUser(m.ctx, sel)
		}
	}
	return m, nil
}

func (m Model) selectedUser() (user.User, bool) {
	list := m.snapshot.Records.List
	if m.admin.selected < 0 || m.admin.selected >= len(list) {
		return user.User{}, false
	}
	return list[m.admin.selected], true
}

// toggleSelectedRole flips role membership on the selected row by staging
// the resulting role list as a field edit.
func (m Model) toggleSelectedRole(role string) {
	sel, ok := m.selectedUser()
	if !ok {
		return
	}
	roles := sel.Roles()
	if sel.HasRole(role) {
		roles = slices.DeleteFunc(roles, func(r string) bool { return r == role })
	} else {
		roles = append(roles, role)
	}
	m.dispatcher.EditListUserField(sel.ID(), user.FieldRoles, strings.Join(roles, ", "))
}

func (m Model) viewAdmin() string {
	styles := m.theme.Styles()
	list := m.snapshot.Records.List

	var b strings.Builder
	b.WriteString(styles.Title.Render("Users"))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d shown", len(list))))
	if m.snapshot.Records.ListFetching {
		b.WriteString("  ")
		b.WriteString(m.spin.View())
	}
	b.WriteString("\n")
	if m.admin.searching || m.admin.search.Value() != "" {
		b.WriteString(m.admin.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(list) == 0 {
		b.WriteString(styles.MutedText.Render("no users match"))
		return b.String()
	}

	for i, u := range list {
		line := m.renderUserRow(styles, u)
		if i == m.admin.selected {
			line = styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderUserRow(styles Styles, u user.User) string {
	marker := " "
	if u.Meta().Dirty {
		marker = "*"
	}
	if u.Meta().Fetching {
		marker = "~"
	}
	name := fmt.Sprintf("%-20s", truncate(u.Username(), 20))
	email := fmt.Sprintf("%-28s", truncate(u.Email(), 28))

	badges := make([]string, 0, 3)
	for _, role := range u.Roles() {
		badges = append(badges, styles.RoleStyle(role).Render(role))
	}
	if len(badges) == 0 {
		badges = append(badges, styles.RoleStyle("User").Render("User"))
	}

	return marker + " " + styles.Text.Render(name) +
		styles.MutedText.Render(email) + " " + strings.Join(badges, " ")
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
