package session

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/dojoauth/internal/client/api"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

type LoginFields struct {
	Email    string
	Password string
}

func (f LoginFields) normalized() LoginFields {
	f.Email = strings.TrimSpace(f.Email)
	return f
}

func (f LoginFields) Validate() error {
	f = f.normalized()
	switch {
	case f.Email == "":
		return &ValidationError{Field: "email", Err: ErrMissingFields}
	case f.Password == "":
		return &ValidationError{Field: "senha", Err: ErrMissingFields}
	}
	return nil
}

func (f LoginFields) request() api.LoginRequest {
	f = f.normalized()
	return api.LoginRequest{Email: f.Email, Password: f.Password}
}

type SignupFields struct {
	Name            string
	Age             string
	MartialArt      string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f SignupFields) normalized() SignupFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return f
}

// Validate checks, in order, that every field is filled, that the passwords
// match and that the password is long enough. It stops at the first failure.
func (f SignupFields) Validate() error {
	f = f.normalized()

	required := []struct {
		name  string
		value string
	}{
		{"nome", f.Name},
		{"idade", f.Age},
		{"arte_marcial", f.MartialArt},
		{"email", f.Email},
		{"senha", f.Password},
		{"confirmarSenha", f.ConfirmPassword},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.name, Err: ErrMissingFields}
		}
	}

	if f.Password != f.ConfirmPassword {
		return &ValidationError{Field: "confirmarSenha", Err: ErrPasswordMismatch}
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return &ValidationError{Field: "senha", Err: ErrPasswordTooShort}
	}
	return nil
}

func (f SignupFields) request() api.SignupRequest {
	f = f.normalized()
	return api.SignupRequest{
		Name:       f.Name,
		Age:        f.Age,
		MartialArt: f.MartialArt,
		Email:      f.Email,
		Password:   f.Password,
	}
}
