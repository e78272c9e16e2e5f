package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/user"
)

// recordingDispatcher captures staged edits so form tests can assert what
// would reach the store.
type recordingDispatcher struct {
	edits     [][2]string
	listEdits [][3]string
}

func (r *recordingDispatcher) NewUser() {}
func (r *recordingDispatcher) EditUserField(field, value string) {
	r.edits = append(r.edits, [2]string{field, value})
}
func (r *recordingDispatcher) EditListUserField(id, field, value string) {
	r.listEdits = append(r.listEdits, [3]string{id, field, value})
}
func (r *recordingDispatcher) SetMessage(string, state.MessageType)                          {}
func (r *recordingDispatcher) Transition(string)                                             {}
func (r *recordingDispatcher) ConsumeTransition()                                            {}
func (r *recordingDispatcher) LoginUser(context.Context, string)                             {}
func (r *recordingDispatcher) HydrateApp(context.Context, string)                            {}
func (r *recordingDispatcher) RegisterUser(context.Context, string)                          {}
func (r *recordingDispatcher) UpdateUser(context.Context, user.User, string)                 {}
func (r *recordingDispatcher) DeleteUser(context.Context, user.User)                         {}
func (r *recordingDispatcher) ListUsers(context.Context, string, string)                     {}
func (r *recordingDispatcher) LogoutUser(context.Context)                                    {}
func (r *recordingDispatcher) StartPasswordReset(context.Context, string)                    {}
func (r *recordingDispatcher) FinishPasswordReset(context.Context, string, string, string, string) {
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPathView_KnownPaths(t *testing.T) {
	cases := map[string]View{
		"/":               ViewHome,
		PathHome:          ViewHome,
		PathLogin:         ViewLogin,
		PathRegister:      ViewRegister,
		PathAccount:       ViewAccount,
		PathAdmin:         ViewAdmin,
		PathPreferences:   ViewPreferences,
		PathPasswordReset: ViewPasswordReset,
	}
	for path, want := range cases {
		got, ok := pathView(path)
		if !ok {
			t.Fatalf("pathView(%q) not found", path)
		}
		if got != want {
			t.Fatalf("pathView(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestPathView_UnknownPath(t *testing.T) {
	if _, ok := pathView("/nowhere"); ok {
		t.Fatalf("pathView(/nowhere) resolved, want miss")
	}
}

func TestForm_StagesBoundEditsPerKeystroke(t *testing.T) {
	d := &recordingDispatcher{}
	f := newLoginForm("")
	f.focusFirst()

	for _, r := range "bob" {
		f.update(keyRunes(string(r)), d)
	}

	if len(d.edits) != 3 {
		t.Fatalf("staged %d edits, want 3", len(d.edits))
	}
	last := d.edits[len(d.edits)-1]
	if last[0] != user.FieldUsername || last[1] != "bob" {
		t.Fatalf("last edit = %v, want [%s bob]", last, user.FieldUsername)
	}
}

func TestForm_LocalFieldsAreNotStaged(t *testing.T) {
	d := &recordingDispatcher{}
	f := newResetForm()
	f.focusFirst()

	f.update(keyRunes("a"), d)

	if len(d.edits) != 0 {
		t.Fatalf("staged %d edits from a local-only form, want 0", len(d.edits))
	}
	if f.email() != "a" {
		t.Fatalf("email = %q, want %q", f.email(), "a")
	}
}

func TestForm_CycleWraps(t *testing.T) {
	f := newLoginForm("")
	f.focusFirst()

	f.cycle(1)
	if f.focus != 1 {
		t.Fatalf("focus = %d, want 1", f.focus)
	}
	f.cycle(1)
	if f.focus != 0 {
		t.Fatalf("focus after wrap = %d, want 0", f.focus)
	}
	f.cycle(-1)
	if f.focus != 1 {
		t.Fatalf("focus after reverse wrap = %d, want 1", f.focus)
	}
}

func TestLoginForm_PrefillsUsername(t *testing.T) {
	f := newLoginForm("remembered")
	if got := f.value(user.FieldUsername); got != "remembered" {
		t.Fatalf("username value = %q, want %q", got, "remembered")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short, 10) = %q", got)
	}
	if got := truncate("a long message here", 10); got != "a long ..." {
		t.Fatalf("truncate = %q, want %q", got, "a long ...")
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate with max 0 = %q, want empty", got)
	}
}
