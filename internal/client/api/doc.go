// Package api is the HTTP transport for the dojo Auth API.
//
// Endpoints:
//   - POST /api/login     {email, senha}                          -> {token, usuario}
//   - POST /api/cadastro  {nome, idade, arte_marcial, email, senha} -> {token, usuario}
//   - GET  <protected>    Authorization: Bearer <token>           -> JSON body
//
// Failures are mapped to sentinel errors that callers match with errors.Is:
// ErrUnavailable for transport failures and ErrMalformedResponse for bodies
// that are not the expected JSON. Non-2xx responses carrying a server message
// are returned as *Error; 401 and 403 also match ErrUnauthorized.
package api
