package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/state"
)

func TestReduceFetchStatus_SetMessageClearsTransition(t *testing.T) {
	fs := state.FetchStatus{TransitionTo: "/admin"}

	fs = state.ReduceFetchStatus(fs, state.SetMessage("saved", state.MessageStatus))

	assert.Equal(t, "saved", fs.Message)
	assert.Equal(t, state.MessageStatus, fs.MessageType)
	assert.Empty(t, fs.TransitionTo)
}

func TestReduceFetchStatus_TransitionSetAndConsume(t *testing.T) {
	fs := state.ReduceFetchStatus(state.FetchStatus{}, state.Transition("/home"))
	assert.Equal(t, "/home", fs.TransitionTo)

	fs = state.ReduceFetchStatus(fs, state.ClearTransition())
	assert.Empty(t, fs.TransitionTo)
}

func TestReduceFetchStatus_StartRaisesFetchingDropsStaleTransition(t *testing.T) {
	fs := state.FetchStatus{TransitionTo: "/stale"}

	fs = state.ReduceFetchStatus(fs, state.Start(state.VerbLogin))

	assert.True(t, fs.Fetching)
	assert.Empty(t, fs.TransitionTo)
}

func TestReduceFetchStatus_SuccessCarriesMessageAndPath(t *testing.T) {
	a := state.Succeed(state.VerbLogin, nil)
	a.Message = "Welcome!"
	a.NextPath = "/home"

	fs := state.ReduceFetchStatus(state.FetchStatus{Fetching: true}, a)

	assert.False(t, fs.Fetching)
	assert.Equal(t, "Welcome!", fs.Message)
	assert.Equal(t, state.MessageStatus, fs.MessageType)
	assert.Equal(t, "/home", fs.TransitionTo)
}

func TestReduceFetchStatus_SuccessWithoutExtrasLeavesMessage(t *testing.T) {
	fs := state.FetchStatus{Fetching: true, Message: "old", MessageType: state.MessageError}

	fs = state.ReduceFetchStatus(fs, state.Succeed(state.VerbList, nil))

	assert.False(t, fs.Fetching)
	assert.Equal(t, "old", fs.Message)
}

func TestReduceFetchStatus_ErrorSetsClassifiedMessage(t *testing.T) {
	err := &api.Error{Kind: api.KindInvalidCredentials, StatusCode: 401}

	fs := state.ReduceFetchStatus(state.FetchStatus{Fetching: true}, state.Fail(state.VerbLogin, err))

	assert.False(t, fs.Fetching)
	assert.Equal(t, state.MessageError, fs.MessageType)
	assert.Equal(t, err.UserMessage(), fs.Message)
}

func TestReduceFetchStatus_HydrateErrorIsSilent(t *testing.T) {
	err := &api.Error{Kind: api.KindInvalidCredentials, StatusCode: 401}

	fs := state.ReduceFetchStatus(state.FetchStatus{Fetching: true}, state.Fail(state.VerbHydrate, err))

	assert.False(t, fs.Fetching)
	assert.Empty(t, fs.Message, "anonymous visits must not flash an error banner")
}

func TestReduceFetchStatus_SyncActionClearsStaleTransition(t *testing.T) {
	fs := state.FetchStatus{TransitionTo: "/stale"}

	fs = state.ReduceFetchStatus(fs, state.EditField("username", "alice"))

	assert.Empty(t, fs.TransitionTo)
}
