package api

import (
	"context"
	"encoding/json"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// SignupRequest is the body of POST /api/cadastro. Age is sent as typed in
// the form.
type SignupRequest struct {
	Name       string `json:"nome"`
	Age        string `json:"idade"`
	MartialArt string `json:"arte_marcial"`
	Email      string `json:"email"`
	Password   string `json:"senha"`
}

// AuthResponse is the success body of login and signup. User is kept raw so
// that profile fields unknown to the client survive persistence.
type AuthResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"usuario"`
}

type errorBody struct {
	Message string `json:"erro"`
}

// Client is the transport contract consumed by the session controller.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	GetProtected(ctx context.Context, path, token string) (json.RawMessage, error)
}
