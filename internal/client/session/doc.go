// Package session implements the client-side authentication state machine.
//
// A Controller starts in StateUnknown, resolves to StateAuthenticated or
// StateAnonymous on Restore, and then moves between those two states on
// Login, Signup, Logout and on 401/403 answers from FetchProtectedResource
// (forced logout).
//
// The active session is persisted to a localstore.Store under two keys,
// "token" and "usuario", which are always written and removed together.
// A partial or unparsable persisted session is discarded on Restore.
//
// The rendering layer is reached only through the Notifier seam:
// OnAuthenticated, OnAnonymous and OnMessage.
//
// # Errors
//
//   - *ValidationError (ErrMissingFields, ErrPasswordMismatch,
//     ErrPasswordTooShort): rejected before any request is sent.
//   - *api.Error: the server refused; its message is shown verbatim.
//   - ErrConnection: transport failure or malformed response.
//   - ErrUnauthenticated: no session, or the token was refused.
//   - ErrBusy: the same form is already being submitted.
package session
