// Package state implements the synchronization core of the roster client:
// a tagged action envelope, a generic record reducer, a status/message
// channel and a single-writer store.
//
// # Overview
//
// Every screen in the client reads from one immutable snapshot of
// application state and every change flows through the store as an Action.
// The store applies two pure reducers to each action - the generic record
// reducer (Reduce) and the status channel reducer (ReduceFetchStatus) -
// then publishes the new snapshot to subscribers.
//
// # Architecture
//
//	UI event ──> Dispatch(Action) ──> action channel
//	                                       │
//	                              reducer goroutine (Run)
//	                                       │
//	                          Reduce + ReduceFetchStatus
//	                                       │
//	                              snapshot replaced
//	                                       │
//	                     subscribers <── fan-out (coalescing)
//
// The reducer goroutine is the only writer. Subscribers receive complete
// snapshots over buffered channels; when a subscriber lags, intermediate
// snapshots are coalesced so it always observes the latest state next.
//
// # Action Envelope
//
// Action is a tagged union over a closed set of verbs (NEW, EDIT, CREATE,
// UPDATE, DELETE, LIST, LOGIN, LOGOUT, HYDRATE, RESET_START, RESET_FINISH)
// crossed with a closed set of statuses (none, START, SUCCESS, ERROR).
// Asynchronous verbs go through the full lifecycle: the dispatcher emits
// START when the request is issued and SUCCESS or ERROR when it resolves.
// Synchronous verbs (NEW, EDIT) apply immediately with no status.
//
// Two control kinds bypass the record reducer entirely: KindSetMessage
// overwrites the user-visible message and KindTransition manages the
// pending navigation target.
//
// # Record Lifecycle
//
// Each synchronized record carries three independent metadata flags (see
// the record package): new, dirty and fetching. The transition table lives
// on Reduce. Highlights:
//
//   - START sets fetching on the current record (LIST instead drops the
//     list and raises its own fetching marker)
//   - CREATE success clears new and dirty and runs the record's
//     after-create hook so transient fields reset
//   - UPDATE success splices the updated record back into the list when it
//     is not the current record, and is a deliberate no-op when the id
//     matches nothing
//   - ERROR clears fetching and nothing else; a failed UPDATE keeps the
//     dirty flag because the local edits are still unpersisted
//
// # Concurrency Model
//
// State transformations are synchronous pure functions; the only
// suspension point is the network request, which lives outside this
// package. Mutual exclusion for "at most one in-flight request per record"
// is cooperative: the dispatcher checks the fetching flag before issuing a
// request. That check is advisory and safe because all dispatches funnel
// through the single reducer goroutine.
//
// # Testing Considerations
//
// Both reducers are pure and can be driven directly without a Store:
//
//	next := state.Reduce(slice, state.Start(state.VerbLogin), codec)
//
// The Store itself needs a running reducer goroutine; tests start one with
// a cancellable context and read through Snapshot or Subscribe.
package state
