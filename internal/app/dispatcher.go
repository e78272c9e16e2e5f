package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/user"
)

// Success messages surfaced through the status channel.
const (
	msgWelcome       = "Welcome!"
	msgLoggedOut     = "Logged out successfully"
	msgRegistered    = "Registration completed, please log in"
	msgUpdated       = "Your information was updated"
	msgResetCodeSent = "Reset code sent, check your email"
	msgPasswordReset = "Password reset successfully."
)

// Dispatcher turns UI intents into actions and server calls. Asynchronous
// verbs follow the START / SUCCESS / ERROR lifecycle: START is dispatched
// before the request goes out, the completion is re-dispatched from a
// background goroutine when the transport resolves.
//
// Every async method applies the double-click guard: when the target
// record is already fetching, the request is not re-issued; if the caller
// supplied a navigation target, a pure transition action is dispatched
// instead. The guard is advisory - it is checked against the latest
// snapshot, not taken as a lock - which is sound here because all
// dispatches funnel through the store's single reducer goroutine.
type Dispatcher struct {
	store  *state.Store[user.User]
	client api.AccountClient
	log    zerolog.Logger
}

// NewDispatcher wires a dispatcher to its store and transport.
func NewDispatcher(store *state.Store[user.User], client api.AccountClient, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{store: store, client: client, log: log}
}

// request describes one server round trip.
type request struct {
	verb       state.Verb
	successMsg string
	nextPath   string
	targetID   string
	// data overrides the success payload when the call itself returns none.
	data map[string]any
	run  func(context.Context) (map[string]any, []map[string]any, error)
}

// issue dispatches START, runs the request in the background and
// re-dispatches the outcome. Errors are recovered here: they become ERROR
// actions for the status channel, never propagate to the caller.
func (d *Dispatcher) issue(ctx context.Context, req request) {
	d.store.Dispatch(state.Start(req.verb))
	go func() {
		data, list, err := req.run(ctx)
		if err != nil {
			d.log.Warn().Err(err).Stringer("verb", req.verb).Msg("request failed")
			d.store.Dispatch(state.Fail(req.verb, err))
			return
		}
		a := state.Succeed(req.verb, data)
		if a.Data == nil {
			a.Data = req.data
		}
		a.List = list
		a.TargetID = req.targetID
		a.Message = req.successMsg
		a.NextPath = req.nextPath
		d.store.Dispatch(a)
	}()
}

// guarded reports whether the request must be suppressed because one is
// already in flight; it dispatches the pending navigation when asked to.
func (d *Dispatcher) guarded(fetching bool, nextPath string) bool {
	if !fetching {
		return false
	}
	if nextPath != "" {
		d.store.Dispatch(state.Transition(nextPath))
	}
	return true
}

// NewUser replaces the current record with a fresh one marked new, the
// first step of registration.
func (d *Dispatcher) NewUser() {
	d.store.Dispatch(state.NewRecord())
}

// EditUserField stages a field edit on the current record.
func (d *Dispatcher) EditUserField(field, value string) {
	d.store.Dispatch(state.EditField(field, value))
}

// EditListUserField stages a field edit on the list element with the
// given id.
func (d *Dispatcher) EditListUserField(id, field, value string) {
	d.store.Dispatch(state.EditListField(id, field, value))
}

// SetMessage overwrites the user-visible message.
func (d *Dispatcher) SetMessage(text string, mt state.MessageType) {
	d.store.Dispatch(state.SetMessage(text, mt))
}

// Transition sets the pending navigation target.
func (d *Dispatcher) Transition(path string) {
	d.store.Dispatch(state.Transition(path))
}

// ConsumeTransition clears the pending navigation target after the
// navigation layer has acted on it.
func (d *Dispatcher) ConsumeTransition() {
	d.store.Dispatch(state.ClearTransition())
}

// LoginUser authenticates with the credentials staged on the current
// record.
func (d *Dispatcher) LoginUser(ctx context.Context, nextPath string) {
	cur := d.store.Snapshot().Records.Current
	if d.guarded(cur.Meta().Fetching, nextPath) {
		return
	}
	username, password := cur.Username(), cur.Password()
	d.issue(ctx, request{
		verb:       state.VerbLogin,
		successMsg: msgWelcome,
		nextPath:   nextPath,
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			data, err := d.client.Login(ctx, username, password)
			return data, nil, err
		},
	})
}

// HydrateApp restores an existing session from cookies. Failures are
// normal anonymous visits and stay silent.
func (d *Dispatcher) HydrateApp(ctx context.Context, nextPath string) {
	cur := d.store.Snapshot().Records.Current
	if d.guarded(cur.Meta().Fetching, nextPath) {
		return
	}
	d.issue(ctx, request{
		verb:     state.VerbHydrate,
		nextPath: nextPath,
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			data, err := d.client.Hydrate(ctx)
			return data, nil, err
		},
	})
}

// RegisterUser creates the account staged on the current record. Only a
// record marked new can be registered.
func (d *Dispatcher) RegisterUser(ctx context.Context, nextPath string) {
	cur := d.store.Snapshot().Records.Current
	if d.guarded(cur.Meta().Fetching, nextPath) || !cur.Meta().New {
		return
	}
	body := cur.CreatePayload()
	d.issue(ctx, request{
		verb:       state.VerbCreate,
		successMsg: msgRegistered,
		nextPath:   nextPath,
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			data, err := d.client.Register(ctx, body)
			return data, nil, err
		},
	})
}

// UpdateUser persists the given record's staged edits. The record may be
// the current one or a list element; the reducer reconciles by id either
// way. Records without local edits are not sent.
func (d *Dispatcher) UpdateUser(ctx context.Context, rec user.User, nextPath string) {
	if d.guarded(rec.Meta().Fetching, nextPath) || !rec.Meta().Dirty {
		return
	}
	username := rec.Username()
	body := rec.UpdatePayload()
	d.issue(ctx, request{
		verb:       state.VerbUpdate,
		successMsg: msgUpdated,
		nextPath:   nextPath,
		// The server acknowledges without echoing the record; reconcile
		// against what was sent.
		data: rec.Data(),
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			data, err := d.client.UpdateUser(ctx, username, body)
			return data, nil, err
		},
	})
}

// DeleteUser removes the given record's account. The current user cannot
// be deleted through this path; admin views operate on list elements.
func (d *Dispatcher) DeleteUser(ctx context.Context, rec user.User) {
	if d.guarded(rec.Meta().Fetching, "") {
		return
	}
	username := rec.Username()
	d.issue(ctx, request{
		verb:     state.VerbDelete,
		targetID: rec.ID(),
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			return nil, nil, d.client.DeleteUser(ctx, username)
		},
	})
}

// ListUsers fetches accounts matching the search text. A list fetch
// already in flight suppresses the request, keeping at most one
// outstanding.
func (d *Dispatcher) ListUsers(ctx context.Context, searchText, nextPath string) {
	if d.guarded(d.store.Snapshot().Records.ListFetching, nextPath) {
		return
	}
	d.issue(ctx, request{
		verb:     state.VerbList,
		nextPath: nextPath,
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			list, err := d.client.ListUsers(ctx, searchText)
			return nil, list, err
		},
	})
}

// LogoutUser ends the session and returns the UI to the home page.
func (d *Dispatcher) LogoutUser(ctx context.Context) {
	const nextPath = "/home"
	cur := d.store.Snapshot().Records.Current
	if d.guarded(cur.Meta().Fetching, nextPath) {
		return
	}
	d.issue(ctx, request{
		verb:       state.VerbLogout,
		successMsg: msgLoggedOut,
		nextPath:   nextPath,
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			return nil, nil, d.client.Logout(ctx)
		},
	})
}

// StartPasswordReset asks the server to mail a reset code. Reset verbs
// drive only the status channel; no record is involved.
func (d *Dispatcher) StartPasswordReset(ctx context.Context, email string) {
	if d.guarded(d.store.Snapshot().Status.Fetching, "") {
		return
	}
	d.issue(ctx, request{
		verb:       state.VerbResetStart,
		successMsg: msgResetCodeSent,
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			return nil, nil, d.client.StartPasswordReset(ctx, email)
		},
	})
}

// FinishPasswordReset redeems a mailed code for a new password.
func (d *Dispatcher) FinishPasswordReset(ctx context.Context, email, code, password, nextPath string) {
	if d.guarded(d.store.Snapshot().Status.Fetching, nextPath) {
		return
	}
	d.issue(ctx, request{
		verb:       state.VerbResetFinish,
		successMsg: msgPasswordReset,
		nextPath:   nextPath,
		run: func(ctx context.Context) (map[string]any, []map[string]any, error) {
			return nil, nil, d.client.FinishPasswordReset(ctx, email, code, password)
		},
	})
}
