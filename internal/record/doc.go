// Package record defines the synchronization metadata shared by every
// domain object the client keeps in step with the server.
//
// # Overview
//
// A synchronized record carries three independent flags describing its
// relationship to the server copy:
//
//   - New:      exists locally but has never been created server-side
//   - Dirty:    has local edits not yet persisted to the server
//   - Fetching: a request for this record is currently in flight
//
// The flags are independent, so a record can be any of the eight
// combinations; the all-false value means the record is idle and in sync.
//
// # Value Semantics
//
// Meta is a plain value type. Every Set/Clear operation returns a new Meta
// and never mutates the receiver, which keeps snapshots of application
// state safe to share across goroutines without copying discipline at the
// call sites. Setting a flag that is already set returns an equal value.
//
// # The Record Constraint
//
// Record is the generic constraint used by the synchronization reducer in
// the state package. A domain type satisfies it by exposing its identity,
// its Meta, and copy-on-write operations that return the concrete type.
// Optional post-success hooks (CreateFinisher, UpdateFinisher) let a domain
// type reset transient fields once the server has accepted a create or an
// update, without the reducer knowing anything about the fields themselves.
package record
