package state

import (
	"errors"

	"github.com/rosterhq/roster/internal/api"
)

// FetchStatus is the auxiliary store slice recording request activity, the
// latest user-visible message and an optional pending navigation target.
type FetchStatus struct {
	// Fetching is true while any request is in flight across the app.
	Fetching bool
	// Message is the latest user-visible text, empty when none.
	Message     string
	MessageType MessageType
	// TransitionTo is a pending navigation path, consumed (cleared) once
	// the navigation layer observes it.
	TransitionTo string
}

// ReduceFetchStatus interprets an action against the status channel. Like
// the record reducer it is pure.
func ReduceFetchStatus(fs FetchStatus, a Action) FetchStatus {
	switch a.Kind {
	case KindSetMessage:
		fs.TransitionTo = ""
		fs.Message = a.Message
		fs.MessageType = a.MessageType
		return fs
	case KindTransition:
		fs.TransitionTo = a.NextPath
		return fs
	}

	switch a.Status {
	case StatusStart:
		fs.Fetching = true
		fs.TransitionTo = ""
	case StatusSuccess:
		fs.Fetching = false
		if a.NextPath != "" {
			fs.TransitionTo = a.NextPath
		}
		if a.Message != "" {
			fs.Message = a.Message
			fs.MessageType = MessageStatus
		}
	case StatusError:
		fs.Fetching = false
		// A failed hydrate is just an anonymous visit; flashing an
		// invalid-credentials banner on page load would be noise.
		if a.Verb != VerbHydrate {
			fs.Message = errorText(a.Err)
			fs.MessageType = MessageError
		}
	default:
		// Synchronous actions invalidate any stale navigation.
		fs.TransitionTo = ""
	}
	return fs
}

func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return api.GenericFetchMessage
}
