package state

import (
	"context"
	"slices"
	"sync"

	"github.com/rosterhq/roster/internal/record"
)

const actionBuffer = 64

// Snapshot is the immutable view of application state handed to readers.
type Snapshot[R record.Record[R]] struct {
	Records Slice[R]
	Status  FetchStatus
}

// Store is the single-writer state container. Actions flow through a
// channel into one reducer goroutine; every dispatch replaces the snapshot
// wholesale and fans it out to subscribers. Readers only ever see complete
// snapshots, never partial updates.
type Store[R record.Record[R]] struct {
	codec   Codec[R]
	actions chan Action

	mu   sync.RWMutex
	snap Snapshot[R]

	subMu sync.Mutex
	subs  []chan Snapshot[R]
}

// NewStore builds a store whose current record starts fresh and idle.
func NewStore[R record.Record[R]](c Codec[R]) *Store[R] {
	s := &Store[R]{
		codec:   c,
		actions: make(chan Action, actionBuffer),
	}
	s.snap.Records.Current = c.Fresh()
	return s
}

// Run consumes dispatched actions until the context is cancelled. It is the
// only goroutine that writes the snapshot.
func (s *Store[R]) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-s.actions:
			s.apply(a)
		}
	}
}

// Dispatch enqueues an action for the reducer goroutine. It never blocks
// the caller under normal load; the buffer is far deeper than the at most
// one in-flight request per record the dispatcher allows.
func (s *Store[R]) Dispatch(a Action) {
	s.actions <- a
}

// Snapshot returns the current state. The snapshot shares no mutable data
// with the store: records are immutable values and the list slice is
// cloned so callers cannot reach the stored one.
func (s *Store[R]) Snapshot() Snapshot[R] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snap)
}

func cloneSnapshot[R record.Record[R]](snap Snapshot[R]) Snapshot[R] {
	snap.Records.List = slices.Clone(snap.Records.List)
	return snap
}

// Subscribe registers a listener for new snapshots. The channel holds one
// pending snapshot; when a subscriber lags, intermediate snapshots are
// coalesced so it always receives the latest state next.
func (s *Store[R]) Subscribe() <-chan Snapshot[R] {
	ch := make(chan Snapshot[R], 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Store[R]) apply(a Action) {
	s.mu.Lock()
	s.snap.Records = Reduce(s.snap.Records, a, s.codec)
	s.snap.Status = ReduceFetchStatus(s.snap.Status, a)
	snap := cloneSnapshot(s.snap)
	s.mu.Unlock()

	s.subMu.Lock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Drop the stale pending snapshot and replace it.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	s.subMu.Unlock()
}
