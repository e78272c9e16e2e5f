package state

// Verb names the semantic operation an action represents, independent of
// the HTTP method that may carry it.
type Verb int

const (
	VerbNew Verb = iota
	VerbEdit
	VerbCreate
	VerbUpdate
	VerbDelete
	VerbList
	VerbLogin
	VerbLogout
	VerbHydrate
	VerbResetStart
	VerbResetFinish
)

// String returns the verb's wire-style name.
func (v Verb) String() string {
	switch v {
	case VerbNew:
		return "NEW"
	case VerbEdit:
		return "EDIT"
	case VerbCreate:
		return "CREATE"
	case VerbUpdate:
		return "UPDATE"
	case VerbDelete:
		return "DELETE"
	case VerbList:
		return "LIST"
	case VerbLogin:
		return "LOGIN"
	case VerbLogout:
		return "LOGOUT"
	case VerbHydrate:
		return "HYDRATE"
	case VerbResetStart:
		return "RESET_START"
	case VerbResetFinish:
		return "RESET_FINISH"
	}
	return "UNKNOWN"
}

// Async reports whether the verb involves a server round trip and hence a
// START/SUCCESS/ERROR lifecycle.
func (v Verb) Async() bool {
	return v != VerbNew && v != VerbEdit
}

// recordless verbs drive only the status channel; they never touch the
// record slice. Password resets run against an account the client does not
// hold a record for.
func (v Verb) recordless() bool {
	return v == VerbResetStart || v == VerbResetFinish
}

// Status is the lifecycle phase of an asynchronous verb. Synchronous verbs
// carry StatusNone.
type Status int

const (
	StatusNone Status = iota
	StatusStart
	StatusSuccess
	StatusError
)

// String returns the status's wire-style name.
func (s Status) String() string {
	switch s {
	case StatusStart:
		return "START"
	case StatusSuccess:
		return "SUCCESS"
	case StatusError:
		return "ERROR"
	}
	return "NONE"
}

// Kind distinguishes domain actions from the two control actions that only
// touch the status channel.
type Kind int

const (
	// KindDomain actions run through the synchronization reducer and the
	// status channel.
	KindDomain Kind = iota
	// KindSetMessage overwrites the user-visible message.
	KindSetMessage
	// KindTransition sets or clears the pending navigation target.
	KindTransition
)

// MessageType classifies the user-visible message.
type MessageType int

const (
	MessageStatus MessageType = iota
	MessageError
)

// String returns "status" or "error".
func (mt MessageType) String() string {
	if mt == MessageError {
		return "error"
	}
	return "status"
}

// Action is the uniform envelope dispatched to the store. Which fields are
// meaningful depends on Kind, Verb and Status; the reducers ignore the rest.
type Action struct {
	Kind   Kind
	Verb   Verb
	Status Status

	// Field/Value carry an EDIT; TargetID addresses a list element for
	// EDIT and DELETE.
	Field    string
	Value    string
	TargetID string

	// Data is the decoded JSON payload of a single record, List of a
	// collection.
	Data map[string]any
	List []map[string]any

	// Err carries the transport failure on StatusError.
	Err error

	// Message and NextPath ride on successes and control actions.
	Message     string
	MessageType MessageType
	NextPath    string
}

// Start builds the envelope dispatched when a request is issued.
func Start(verb Verb) Action {
	return Action{Verb: verb, Status: StatusStart}
}

// Succeed builds the envelope dispatched when a request completes.
func Succeed(verb Verb, data map[string]any) Action {
	return Action{Verb: verb, Status: StatusSuccess, Data: data}
}

// Fail builds the envelope dispatched when a request errors.
func Fail(verb Verb, err error) Action {
	return Action{Verb: verb, Status: StatusError, Err: err}
}

// EditField builds the synchronous envelope for a field edit on the
// current record.
func EditField(field, value string) Action {
	return Action{Verb: VerbEdit, Field: field, Value: value}
}

// EditListField builds the synchronous envelope for a field edit on the
// list element with the given id.
func EditListField(targetID, field, value string) Action {
	return Action{Verb: VerbEdit, TargetID: targetID, Field: field, Value: value}
}

// NewRecord builds the synchronous envelope that replaces the current
// record with a fresh one marked new.
func NewRecord() Action {
	return Action{Verb: VerbNew}
}

// SetMessage overwrites the user-visible message and drops any pending
// navigation.
func SetMessage(text string, mt MessageType) Action {
	return Action{Kind: KindSetMessage, Message: text, MessageType: mt}
}

// Transition sets the pending navigation target.
func Transition(path string) Action {
	return Action{Kind: KindTransition, NextPath: path}
}

// ClearTransition removes the pending navigation target once the
// navigation layer has observed it.
func ClearTransition() Action {
	return Action{Kind: KindTransition}
}
