// Package app wires the roster client together and hosts the dispatcher.
//
// # Boot Sequence
//
// Run performs the startup in a fixed order:
//
//  1. Load configuration (config.Load)
//  2. Open the client log file (logging.Open)
//  3. Load local preferences (prefs.Load)
//  4. Build the accounts API client (api.NewClient)
//  5. Create the state store and start its reducer goroutine
//  6. Build the dispatcher
//  7. Issue an initial hydrate to restore any existing session
//  8. Start the background session refresher
//  9. Hand control to the UI until the context is cancelled
//
// Failures in steps 1-4 abort startup; a failed hydrate is a normal
// anonymous visit and is silent.
//
// # The Dispatcher
//
// The dispatcher is the only component that talks to both the store and
// the transport. UI intents become one of two things:
//
//   - synchronous actions (field edits, messages, navigation), dispatched
//     directly to the store
//   - server round trips, wrapped in the START/SUCCESS/ERROR lifecycle:
//     START is dispatched up front, the request runs in a background
//     goroutine, and the outcome is re-dispatched when it resolves
//
// Transport errors never propagate to the caller; they are converted to
// ERROR actions and surface through the status channel as user-facing
// messages.
//
// # Double Submission
//
// Before issuing a request, the dispatcher consults the latest snapshot:
// if the target record (or the list, for LIST) is already fetching, the
// request is suppressed and only the pending navigation is dispatched.
// The check is advisory rather than a lock, which is sufficient because
// requests originate from a single UI goroutine and all state changes
// funnel through the reducer.
//
// # Session Refresh
//
// StartSessionRefresher re-hydrates the session on a fixed interval so
// the server keeps rotating the auth cookies. Refreshes are skipped while
// the user is anonymous or the current record is not idle, so staged
// edits are never clobbered by a refresh.
package app
