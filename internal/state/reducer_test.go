package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/user"
)

var userCodec = state.Codec[user.User]{
	Fresh:    user.New,
	FromData: user.FromData,
}

func freshSlice() state.Slice[user.User] {
	return state.Slice[user.User]{Current: user.New()}
}

func listSlice(users ...user.User) state.Slice[user.User] {
	return state.Slice[user.User]{Current: user.New(), List: users, HasList: true}
}

func hydrated(id, username string) user.User {
	return user.FromData(map[string]any{"user_id": id, "username": username})
}

func TestReduce_StartSetsFetching(t *testing.T) {
	s := state.Reduce(freshSlice(), state.Start(state.VerbLogin), userCodec)
	assert.True(t, s.Current.Meta().Fetching)
}

func TestReduce_ErrorClearsFetchingKeepsDirty(t *testing.T) {
	s := freshSlice()
	s.Current = s.Current.UpdateField(user.FieldEmail, "a@b.co")
	s = state.Reduce(s, state.Start(state.VerbUpdate), userCodec)
	require.True(t, s.Current.Meta().Fetching)

	s = state.Reduce(s, state.Fail(state.VerbUpdate, nil), userCodec)
	assert.False(t, s.Current.Meta().Fetching)
	assert.True(t, s.Current.Meta().Dirty, "edits are still unpersisted after a failed update")
}

func TestReduce_NewRecordMarkedNew(t *testing.T) {
	s := state.Reduce(freshSlice(), state.NewRecord(), userCodec)
	assert.True(t, s.Current.Meta().New)
	assert.False(t, s.Current.Meta().Dirty)
}

func TestReduce_EditCurrent(t *testing.T) {
	s := state.Reduce(freshSlice(), state.EditField(user.FieldUsername, "alice"), userCodec)
	assert.Equal(t, "alice", s.Current.Username())
	assert.True(t, s.Current.Meta().Dirty)
}

func TestReduce_EditListElement(t *testing.T) {
	s := listSlice(hydrated("U1", "alice"), hydrated("U2", "bob"))

	s = state.Reduce(s, state.EditListField("U2", user.FieldEmail, "bob@example.com"), userCodec)

	assert.Equal(t, "bob@example.com", s.List[1].Email())
	assert.True(t, s.List[1].Meta().Dirty)
	assert.Empty(t, s.List[0].Email(), "other elements untouched")
	assert.False(t, s.Current.Meta().Dirty)
}

func TestReduce_CreateSuccessResetsFlagsAndTransients(t *testing.T) {
	s := freshSlice()
	s = state.Reduce(s, state.NewRecord(), userCodec)
	s = state.Reduce(s, state.EditField(user.FieldUsername, "alice"), userCodec)
	s = state.Reduce(s, state.EditField(user.FieldRoles, "Admin"), userCodec)
	s = state.Reduce(s, state.EditField(user.FieldPassword, "hunter21!"), userCodec)
	s = state.Reduce(s, state.Start(state.VerbCreate), userCodec)

	s = state.Reduce(s, state.Succeed(state.VerbCreate, map[string]any{"user_id": "U9"}), userCodec)

	m := s.Current.Meta()
	assert.False(t, m.New)
	assert.False(t, m.Dirty)
	assert.False(t, m.Fetching)
	assert.Empty(t, s.Current.Roles(), "server assigns the default role")
	assert.Empty(t, s.Current.Password())
	assert.Equal(t, "alice", s.Current.Username())
}

func TestReduce_UpdateSuccessOnCurrent(t *testing.T) {
	s := freshSlice()
	s.Current = hydrated("U1", "alice").
		UpdateField(user.FieldPhone, "9195551234").
		UpdateField(user.FieldPassword, "hunter21!")
	s = state.Reduce(s, state.Start(state.VerbUpdate), userCodec)

	a := state.Succeed(state.VerbUpdate, map[string]any{
		"user_id": "U1", "username": "alice", "phone": "9195551234",
	})
	s = state.Reduce(s, a, userCodec)

	m := s.Current.Meta()
	assert.False(t, m.Dirty)
	assert.False(t, m.Fetching)
	assert.Empty(t, s.Current.Password(), "password forces re-entry next session")
	assert.Equal(t, "9195551234", s.Current.Phone())
}

func TestReduce_UpdateSuccessSplicesIntoList(t *testing.T) {
	s := listSlice(hydrated("U1", "alice"), hydrated("U2", "bob"))
	s.Current = hydrated("ADMIN", "root")
	s = state.Reduce(s, state.Start(state.VerbUpdate), userCodec)

	a := state.Succeed(state.VerbUpdate, map[string]any{
		"user_id": "U2", "username": "bob", "roles": "Admin",
	})
	s = state.Reduce(s, a, userCodec)

	require.Len(t, s.List, 2)
	assert.True(t, s.List[1].HasRole("Admin"))
	assert.False(t, s.List[1].Meta().Dirty)
	assert.False(t, s.Current.Meta().Fetching, "fetching set at start must come back off")
	assert.Equal(t, "root", s.Current.Username())
}

func TestReduce_UpdateSuccessNoMatchIsNoOp(t *testing.T) {
	s := listSlice(hydrated("U1", "alice"))
	s.Current = hydrated("ADMIN", "root")

	a := state.Succeed(state.VerbUpdate, map[string]any{"user_id": "GHOST", "username": "nobody"})
	got := state.Reduce(s, a, userCodec)

	assert.True(t, got.Current.Equal(s.Current))
	require.Len(t, got.List, 1)
	assert.True(t, got.List[0].Equal(s.List[0]))
}

func TestReduce_DeleteSuccessRemovesFromList(t *testing.T) {
	s := listSlice(hydrated("U1", "alice"), hydrated("U2", "bob"))

	a := state.Succeed(state.VerbDelete, nil)
	a.TargetID = "U1"
	s = state.Reduce(s, a, userCodec)

	require.Len(t, s.List, 1)
	assert.Equal(t, "U2", s.List[0].ID())

	// Deleting an id that is not present leaves the list alone.
	a.TargetID = "GHOST"
	s = state.Reduce(s, a, userCodec)
	assert.Len(t, s.List, 1)
}

func TestReduce_LoginLifecycle(t *testing.T) {
	s := freshSlice()
	s.Current = s.Current.UpdateField(user.FieldUsername, "testing")

	s = state.Reduce(s, state.Start(state.VerbLogin), userCodec)
	assert.True(t, s.Current.Meta().Fetching)

	payload := map[string]any{
		"user_id": "U1", "username": "testing", "email": "t@example.com",
		"phone": "9195551234", "roles": "Admin",
	}
	s = state.Reduce(s, state.Succeed(state.VerbLogin, payload), userCodec)

	assert.True(t, s.Current.Equal(user.FromData(payload)))
	assert.False(t, s.Current.Meta().Fetching)
}

func TestReduce_LogoutSuccessFreshRecordDropsList(t *testing.T) {
	s := listSlice(hydrated("U1", "alice"))
	s.Current = hydrated("U1", "alice")

	s = state.Reduce(s, state.Succeed(state.VerbLogout, nil), userCodec)

	m := s.Current.Meta()
	assert.False(t, m.New)
	assert.False(t, m.Dirty)
	assert.False(t, m.Fetching)
	assert.Empty(t, s.Current.Username())
	assert.False(t, s.HasList)
	assert.Nil(t, s.List)
}

func TestReduce_ListLifecycle(t *testing.T) {
	s := listSlice(hydrated("U0", "stale"))

	s = state.Reduce(s, state.Start(state.VerbList), userCodec)
	assert.True(t, s.ListFetching)
	assert.False(t, s.HasList)
	assert.Nil(t, s.List, "list is absent while the fetch is in flight")
	assert.False(t, s.Current.Meta().Fetching, "list fetch does not touch the current record")

	a := state.Succeed(state.VerbList, nil)
	a.List = []map[string]any{
		{"user_id": "U1", "username": "alice"},
		{"user_id": "U2", "username": "bob"},
	}
	s = state.Reduce(s, a, userCodec)
	assert.False(t, s.ListFetching)
	require.True(t, s.HasList)
	require.Len(t, s.List, 2)
	assert.Equal(t, "alice", s.List[0].Username())

	s = state.Reduce(s, state.Fail(state.VerbList, nil), userCodec)
	assert.False(t, s.ListFetching)
	assert.False(t, s.HasList)
	assert.Nil(t, s.List)
}

func TestReduce_ResetVerbsLeaveRecordsAlone(t *testing.T) {
	s := freshSlice()
	s.Current = hydrated("U1", "alice")

	for _, a := range []state.Action{
		state.Start(state.VerbResetStart),
		state.Succeed(state.VerbResetFinish, nil),
		state.Fail(state.VerbResetStart, nil),
	} {
		got := state.Reduce(s, a, userCodec)
		assert.True(t, got.Current.Equal(s.Current), "verb %s must not touch records", a.Verb)
	}
}

func TestReduce_ControlActionsIgnored(t *testing.T) {
	s := freshSlice()
	s.Current = hydrated("U1", "alice")

	got := state.Reduce(s, state.SetMessage("hi", state.MessageStatus), userCodec)
	assert.True(t, got.Current.Equal(s.Current))

	got = state.Reduce(s, state.Transition("/home"), userCodec)
	assert.True(t, got.Current.Equal(s.Current))
}
