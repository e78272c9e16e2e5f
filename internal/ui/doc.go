// Package ui provides the terminal user interface for roster.
//
// # Architecture Overview
//
// The UI is a bubbletea program. It never owns application state: every
// page renders from the latest store snapshot, and every user intent goes
// through the Dispatcher interface. The store's subscription channel feeds
// snapshots back into the program as messages, closing the loop:
//
//	key press -> dispatcher intent -> action -> reducer -> snapshot -> render
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - ui.go: Options, the Model, message routing, navigation, and Run
//   - forms.go: text-input forms for login, registration, account editing
//     and password reset
//   - views.go: page update/view functions for everything but admin
//   - admin.go: the user administration listing with search and role toggles
//   - header.go: the status bar and the key-hint bar
//   - theme.go: color themes and lipgloss styles
//
// # Views
//
//   - Home: entry menu; contents depend on whether a session is active
//   - Login / Register: credential forms; field edits are staged on the
//     record as the user types
//   - Account: edit the signed-in user's details
//   - Admin: search, role management and deletion across all accounts
//     (requires the Admin role)
//   - Preferences: theme selection, stored locally and on the account
//   - Password reset: two-phase email code flow
//   - Debug log: tail of the client's own log file
//
// # Navigation
//
// Pages that follow a server round trip are not switched to directly: the
// target path rides on the dispatched action, the reducer surfaces it as a
// pending transition, and the UI navigates when the snapshot carrying it
// arrives, then acknowledges with ConsumeTransition. Pure page switches go
// through the same mechanism via the Transition intent, so navigation has
// a single code path.
//
// # Input Staging
//
// Form inputs bound to a record field stage every edit through
// EditUserField as the user types, mirroring controlled inputs: the record
// in the store is the single source of truth for what a submit sends, and
// the dirty flag tracks unsaved work without the UI keeping its own copy.
//
// # External Dependencies
//
//   - state.Store: snapshot source and subscription channel
//   - Dispatcher: intent sink, implemented by the application layer
//   - config: client configuration (log file location for the debug view)
//   - prefs: local theme and remembered-username persistence
package ui
