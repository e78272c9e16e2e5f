package api

import "fmt"

// ErrorKind classifies request failures into the cases the UI can explain
// to the user.
type ErrorKind int

const (
	// KindFetch covers transport failures and unexpected statuses.
	KindFetch ErrorKind = iota
	// KindInvalidRequest is a server-side validation rejection (400).
	KindInvalidRequest
	// KindInvalidCredentials is an authentication failure (401).
	KindInvalidCredentials
	// KindDuplicateKey is a uniqueness conflict (409).
	KindDuplicateKey
	// KindServer is an internal server error (500).
	KindServer
)

// String returns the kind's short name.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid-request"
	case KindInvalidCredentials:
		return "invalid-credentials"
	case KindDuplicateKey:
		return "duplicate-key"
	case KindServer:
		return "server-error"
	}
	return "fetch-error"
}

// Message texts surfaced through the status channel.
const (
	invalidRequestMessage     = "Erroneous API use, server validation failed"
	invalidCredentialsMessage = "Invalid Credentials - please log in with a valid username and password"
	duplicateKeyMessage       = "Key values in this request that should be unique are not"
	serverErrorMessage        = "Unknown Server Error - please log out and refresh application"

	// GenericFetchMessage is the fallback for failures that carry no
	// classified kind.
	GenericFetchMessage = "Error fetching information from server - please refresh application"
)

// Error is a classified request failure.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("api: %s: %v", e.Kind, e.Cause)
	case e.StatusCode > 0:
		return fmt.Sprintf("api: %s (http %d)", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("api: %s", e.Kind)
}

// Unwrap exposes the underlying transport failure when there is one.
func (e *Error) Unwrap() error { return e.Cause }

// UserMessage returns the text shown to the user for this failure.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindInvalidRequest:
		return invalidRequestMessage
	case KindInvalidCredentials:
		return invalidCredentialsMessage
	case KindDuplicateKey:
		return duplicateKeyMessage
	case KindServer:
		return serverErrorMessage
	}
	return GenericFetchMessage
}

func kindForStatus(code int) ErrorKind {
	switch code {
	case 400:
		return KindInvalidRequest
	case 401:
		return KindInvalidCredentials
	case 409:
		return KindDuplicateKey
	case 500:
		return KindServer
	}
	return KindFetch
}
