// Package cli provides the interactive dojo command-line client.
//
// It wires configuration, the local session database, the Auth API client
// and the session controller into a REPL. On start the previous session is
// restored from disk, so a user who logged in earlier is greeted by name.
//
// Commands:
//   - login, signup (alias register)
//   - logout, asking for confirmation first
//   - profile: fetch /api/perfil with the stored token
//   - status: state, user and token expiry
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
