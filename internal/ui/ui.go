package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/prefs"
	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/user"
)

// Dispatcher is the set of intents the UI can issue. The application layer
// provides the implementation; declaring the interface here keeps the UI
// free of a dependency on it.
type Dispatcher interface {
	NewUser()
	EditUserField(field, value string)
	EditListUserField(id, field, value string)
	SetMessage(text string, mt state.MessageType)
	Transition(path string)
	ConsumeTransition()
	LoginUser(ctx context.Context, nextPath string)
	HydrateApp(ctx context.Context, nextPath string)
	RegisterUser(ctx context.Context, nextPath string)
	UpdateUser(ctx context.Context, rec user.User, nextPath string)
	DeleteUser(ctx context.Context, rec user.User)
	ListUsers(ctx context.Context, searchText, nextPath string)
	LogoutUser(ctx context.Context)
	StartPasswordReset(ctx context.Context, email string)
	FinishPasswordReset(ctx context.Context, email, code, password, nextPath string)
}

// Options configure the UI runtime.
type Options struct {
	Context    context.Context
	Store      *state.Store[user.User]
	Dispatcher Dispatcher
	Config     *config.Config
	ThemeName  string
	Username   string
	PrefsPath  string
}

// View identifies the page currently on screen.
type View int

const (
	ViewHome View = iota
	ViewLogin
	ViewRegister
	ViewAccount
	ViewAdmin
	ViewPreferences
	ViewPasswordReset
	ViewDebugLog
)

// Navigation paths dispatched with asynchronous actions. The page to show
// after a request resolves rides on the action itself, so navigation stays
// in lockstep with state changes.
const (
	PathHome          = "/home"
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathAccount       = "/account"
	PathAdmin         = "/admin"
	PathPreferences   = "/preferences"
	PathPasswordReset = "/pw_reset"
)

var pathViews = map[string]View{
	"/":               ViewHome,
	PathHome:          ViewHome,
	PathLogin:         ViewLogin,
	PathRegister:      ViewRegister,
	PathAccount:       ViewAccount,
	PathAdmin:         ViewAdmin,
	PathPreferences:   ViewPreferences,
	PathPasswordReset: ViewPasswordReset,
}

// pathView resolves a navigation path to its view.
func pathView(path string) (View, bool) {
	v, ok := pathViews[path]
	return v, ok
}

// snapshotMsg delivers a new state snapshot to the program.
type snapshotMsg state.Snapshot[user.User]

// logLinesMsg delivers the tail of the client log for the debug view.
type logLinesMsg []string

// Model is the bubbletea model for the whole application.
type Model struct {
	ctx        context.Context
	store      *state.Store[user.User]
	dispatcher Dispatcher
	cfg        *config.Config
	prefsPath  string

	theme  Theme
	width  int
	height int

	view     View
	snapshot state.Snapshot[user.User]
	sub      <-chan state.Snapshot[user.User]
	spin     spinner.Model

	login    loginForm
	register registerForm
	account  accountForm
	reset    resetForm
	admin    adminState
	logLines []string
}

// Run wires up the bubbletea program and blocks until ctx is cancelled or
// the user quits.
func Run(opts Options) error {
	if opts.Store == nil || opts.Dispatcher == nil {
		return fmt.Errorf("ui requires a store and a dispatcher")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := GetTheme(opts.ThemeName)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	m := Model{
		ctx:        ctx,
		store:      opts.Store,
		dispatcher: opts.Dispatcher,
		cfg:        opts.Config,
		prefsPath:  opts.PrefsPath,
		theme:      theme,
		view:       ViewHome,
		snapshot:   opts.Store.Snapshot(),
		sub:        opts.Store.Subscribe(),
		spin:       sp,
		login:      newLoginForm(opts.Username),
		register:   newRegisterForm(),
		account:    newAccountForm(),
		reset:      newResetForm(),
		admin:      newAdminState(),
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err == tea.ErrProgramKilled && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init starts the snapshot subscription and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitSnapshot(), m.spin.Tick)
}

// waitSnapshot blocks on the store subscription and converts the next
// snapshot into a message. The subscription channel coalesces, so a slow
// render never backs up the reducer.
func (m Model) waitSnapshot() tea.Cmd {
	sub := m.sub
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-sub:
			return snapshotMsg(snap)
		}
	}
}

// Update routes messages to the current view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snapshot = state.Snapshot[user.User](msg)
		m.applyTransition()
		return m, m.waitSnapshot()

	case logLinesMsg:
		m.logLines = msg
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateKey(msg)
	}
	return m, nil
}

// applyTransition navigates to a pending path set by the reducer and
// acknowledges it.
func (m *Model) applyTransition() {
	path := m.snapshot.Status.TransitionTo
	if path == "" {
		return
	}
	if v, ok := pathView(path); ok {
		m.navigate(v)
	}
	m.dispatcher.ConsumeTransition()
}

// navigate switches views and primes view-local state.
func (m *Model) navigate(v View) {
	m.view = v
	switch v {
	case ViewLogin:
		// The prefilled username only exists in the input; stage it so the
		// login request sees it even if the user never retypes it.
		if v := m.login.value(user.FieldUsername); v != "" {
			m.dispatcher.EditUserField(user.FieldUsername, v)
		}
		m.login.focusFirst()
	case ViewRegister:
		m.dispatcher.NewUser()
		m.register = newRegisterForm()
		m.register.focusFirst()
	case ViewAccount:
		m.account = accountFormFrom(m.snapshot.Records.Current)
		m.account.focusFirst()
	case ViewPasswordReset:
		m.reset = newResetForm()
		m.reset.focusFirst()
	case ViewAdmin:
		m.admin.selected = 0
	}
}

// updateKey dispatches key input to the active view.
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewLogin:
		return m.updateLogin(msg)
	case ViewRegister:
		return m.updateRegister(msg)
	case ViewAccount:
		return m.updateAccount(msg)
	case ViewAdmin:
		return m.updateAdmin(msg)
	case ViewPreferences:
		return m.updatePreferences(msg)
	case ViewPasswordReset:
		return m.updateReset(msg)
	case ViewDebugLog:
		return m.updateDebugLog(msg)
	default:
		return m.updateHome(msg)
	}
}

// View renders the current page between the header and command bars.
func (m Model) View() string {
	var body string
	switch m.view {
	case ViewLogin:
		body = m.viewLogin()
	case ViewRegister:
		body = m.viewRegister()
	case ViewAccount:
		body = m.viewAccount()
	case ViewAdmin:
		body = m.viewAdmin()
	case ViewPreferences:
		body = m.viewPreferences()
	case ViewPasswordReset:
		body = m.viewReset()
	case ViewDebugLog:
		body = m.viewDebugLog()
	default:
		body = m.viewHome()
	}

	header := m.renderHeader()
	footer := m.renderCommandBar()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight > 0 {
		body = lipgloss.NewStyle().Height(bodyHeight).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// loggedIn reports whether a session is active.
func (m Model) loggedIn() bool {
	return m.snapshot.Records.Current.ID() != "" && !m.snapshot.Records.Current.Meta().New
}

// cycleTheme advances to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	p, _ := prefs.Load(m.prefsPath)
	p.Theme = m.theme.Name
	_ = prefs.Save(m.prefsPath, p)
}
