package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rosterhq/roster/internal/user"
)

// formField binds one text input to a record field. Fields with an empty
// bind keep their value local to the UI; everything else is staged through
// the dispatcher on every keystroke, the record being the single source of
// truth for what gets submitted.
type formField struct {
	label string
	bind  string
	input textinput.Model
}

type form struct {
	fields []formField
	focus  int
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func newPasswordInput(placeholder string) textinput.Model {
	ti := newInput(placeholder)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	return ti
}

func (f *form) focusFirst() { f.setFocus(0) }

func (f *form) setFocus(i int) {
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	f.focus = i
}

func (f *form) cycle(delta int) {
	n := len(f.fields)
	if n == 0 {
		return
	}
	f.setFocus(((f.focus+delta)%n + n) % n)
}

// update feeds the key to the focused input and stages the edit when the
// field is bound to the record.
func (f *form) update(msg tea.Msg, d Dispatcher) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	fld := &f.fields[f.focus]
	before := fld.input.Value()
	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	if after := fld.input.Value(); after != before && fld.bind != "" {
		d.EditUserField(fld.bind, after)
	}
	return cmd
}

// value returns the current text of the field bound to the given name.
func (f *form) value(bind string) string {
	for i := range f.fields {
		if f.fields[i].bind == bind {
			return f.fields[i].input.Value()
		}
	}
	return ""
}

// view renders the form's labels and inputs, one per line.
func (f *form) view(styles Styles) string {
	var b strings.Builder
	for i := range f.fields {
		label := styles.MutedText.Render(f.fields[i].label)
		if i == f.focus {
			label = styles.AccentText.Render(f.fields[i].label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.fields[i].input.View())
		if i < len(f.fields)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

type loginForm struct{ form }

func newLoginForm(username string) loginForm {
	usernameInput := newInput("username")
	usernameInput.SetValue(username)
	return loginForm{form{fields: []formField{
		{label: "Username", bind: user.FieldUsername, input: usernameInput},
		{label: "Password", bind: user.FieldPassword, input: newPasswordInput("password")},
	}}}
}

type registerForm struct{ form }

func newRegisterForm() registerForm {
	return registerForm{form{fields: []formField{
		{label: "Username", bind: user.FieldUsername, input: newInput("username")},
		{label: "Email", bind: user.FieldEmail, input: newInput("you@example.com")},
		{label: "Phone", bind: user.FieldPhone, input: newInput("10 digits")},
		{label: "First name", bind: user.FieldFirstName, input: newInput("first name")},
		{label: "Last name", bind: user.FieldLastName, input: newInput("last name")},
		{label: "Password", bind: user.FieldPassword, input: newPasswordInput("8-20 chars, digit and symbol")},
	}}}
}

type accountForm struct{ form }

// accountFormFrom prefills the account form from the signed-in record.
func accountFormFrom(u user.User) accountForm {
	f := accountForm{form{fields: []formField{
		{label: "First name", bind: user.FieldFirstName, input: newInput("first name")},
		{label: "Last name", bind: user.FieldLastName, input: newInput("last name")},
		{label: "Email", bind: user.FieldEmail, input: newInput("you@example.com")},
		{label: "Phone", bind: user.FieldPhone, input: newInput("10 digits")},
		{label: "Current password", bind: user.FieldPassword, input: newPasswordInput("required to save")},
		{label: "New password", bind: user.FieldNewPassword, input: newPasswordInput("leave empty to keep")},
	}}}
	for i := range f.fields {
		switch f.fields[i].bind {
		case user.FieldPassword, user.FieldNewPassword:
		default:
			f.fields[i].input.SetValue(u.Field(f.fields[i].bind))
		}
	}
	return f
}

func newAccountForm() accountForm {
	return accountFormFrom(user.New())
}

// resetForm runs the two-phase password reset. Its values stay local: the
// reset verbs are recordless, so nothing is staged on the record.
type resetForm struct {
	form
	codeSent bool
}

func newResetForm() resetForm {
	return resetForm{form: form{fields: []formField{
		{label: "Email", input: newInput("account email")},
		{label: "Reset code", input: newInput("6 digits")},
		{label: "New password", input: newPasswordInput("8-20 chars, digit and symbol")},
	}}}
}

func (f *resetForm) email() string    { return f.fields[0].input.Value() }
func (f *resetForm) code() string     { return f.fields[1].input.Value() }
func (f *resetForm) password() string { return f.fields[2].input.Value() }
