// Package api provides the HTTP client for the accounts service.
//
// # Overview
//
// The client covers the endpoints the roster UI consumes:
//
//   - POST /login: authenticate with username and password
//   - GET  /login: restore an existing session from cookies (hydrate)
//   - POST /logout: end the session server-side
//   - POST /users: register a new account
//   - GET  /users?search_text=: list or search accounts (admin)
//   - PUT  /users/{username}: update an account
//   - DELETE /users/{username}: remove an account (admin)
//   - POST /pw_reset: mail a password reset code
//   - PUT  /pw_reset: redeem a reset code for a new password
//
// Responses are decoded as generic JSON maps; the domain layer owns the
// translation into typed records. DELETE and the reset endpoints carry no
// response body.
//
// # Sessions and CSRF
//
// Authentication is cookie-based. The client keeps a cookie jar so the
// session cookies set at login (or by the reset-start call) ride along on
// later requests automatically. The server double-submits its CSRF token
// as a cookie; the client replays it in the X-CSRF-TOKEN header, preferring
// the access token cookie over the refresh token cookie when both exist.
//
// # Error Taxonomy
//
// Failures are classified into *Error values the status layer can turn
// into user-facing text:
//
//	400 → invalid-request       (server-side validation rejection)
//	401 → invalid-credentials
//	409 → duplicate-key
//	500 → server-error
//	other statuses and transport failures → fetch-error
//
// Errors never panic out of the client; callers receive them as ordinary
// error returns and the dispatcher converts them into ERROR actions.
//
// # Request Handling
//
// All requests take a context for cancellation, carry a JSON content type
// when they have a body, a User-Agent, and a fresh X-Request-ID for
// correlation with the request log. The default timeout is 10 seconds.
//
// # Testing Considerations
//
// AccountClient is the seam for tests: the dispatcher depends on the
// interface, and the client itself is exercised against httptest servers.
package api
