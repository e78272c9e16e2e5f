package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/user"
)

func errInvalidCredentials() *api.Error {
	return &api.Error{Kind: api.KindInvalidCredentials, StatusCode: 401}
}

func startStore(t *testing.T) *state.Store[user.User] {
	t.Helper()
	store := state.NewStore(userCodec)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go store.Run(ctx)
	return store
}

func awaitSnapshot(t *testing.T, ch <-chan state.Snapshot[user.User]) state.Snapshot[user.User] {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return state.Snapshot[user.User]{}
	}
}

func TestStore_InitialSnapshotIsFreshAndIdle(t *testing.T) {
	store := state.NewStore(userCodec)

	snap := store.Snapshot()

	assert.True(t, snap.Records.Current.Meta().Idle())
	assert.False(t, snap.Records.HasList)
	assert.False(t, snap.Status.Fetching)
}

func TestStore_LoginScenario(t *testing.T) {
	store := startStore(t)
	sub := store.Subscribe()

	store.Dispatch(state.EditField(user.FieldUsername, "testing"))
	snap := awaitSnapshot(t, sub)
	assert.Equal(t, "testing", snap.Records.Current.Username())

	store.Dispatch(state.Start(state.VerbLogin))
	snap = awaitSnapshot(t, sub)
	assert.True(t, snap.Records.Current.Meta().Fetching)
	assert.True(t, snap.Status.Fetching)

	payload := map[string]any{"user_id": "U1", "username": "testing"}
	a := state.Succeed(state.VerbLogin, payload)
	a.Message = "Welcome!"
	store.Dispatch(a)
	snap = awaitSnapshot(t, sub)

	require.True(t, snap.Records.Current.Equal(user.FromData(payload)))
	assert.False(t, snap.Records.Current.Meta().Fetching)
	assert.Equal(t, "Welcome!", snap.Status.Message)
	assert.Equal(t, state.MessageStatus, snap.Status.MessageType)
}

func TestStore_LoginErrorScenario(t *testing.T) {
	store := startStore(t)
	sub := store.Subscribe()

	store.Dispatch(state.Start(state.VerbLogin))
	awaitSnapshot(t, sub)

	store.Dispatch(state.Fail(state.VerbLogin, errInvalidCredentials()))
	snap := awaitSnapshot(t, sub)

	assert.False(t, snap.Records.Current.Meta().Fetching)
	assert.Equal(t, state.MessageError, snap.Status.MessageType)
	assert.Equal(t, errInvalidCredentials().UserMessage(), snap.Status.Message)
}

func TestStore_SubscriberCoalescesWhenLagging(t *testing.T) {
	store := startStore(t)
	sub := store.Subscribe()

	// Dispatch several edits without reading; the subscriber channel
	// should end up holding the latest snapshot.
	for _, name := range []string{"a", "ab", "abc", "abcd"} {
		store.Dispatch(state.EditField(user.FieldUsername, name))
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-sub:
			if snap.Records.Current.Username() == "abcd" {
				return
			}
		case <-deadline:
			t.Fatalf("never observed final state, last username %q",
				store.Snapshot().Records.Current.Username())
		}
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := startStore(t)
	sub := store.Subscribe()

	a := state.Succeed(state.VerbList, nil)
	a.List = []map[string]any{{"user_id": "U1", "username": "alice"}}
	store.Dispatch(a)
	snap := awaitSnapshot(t, sub)
	require.Len(t, snap.Records.List, 1)

	// Mutating a returned snapshot's list must not leak into the store.
	snap.Records.List[0] = snap.Records.List[0].UpdateField(user.FieldUsername, "mallory")
	store.Dispatch(state.EditField(user.FieldEmail, "x@y.co"))
	snap2 := awaitSnapshot(t, sub)
	assert.Equal(t, "alice", snap2.Records.List[0].Username())
}
