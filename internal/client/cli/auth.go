package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dojoauth/internal/client/api"
	"github.com/dmitrijs2005/dojoauth/internal/client/session"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

const logoutQuestion = "Do you really want to log out?"

// Login prompts for email and password and hands them to the controller.
// Outcome messages are printed by the terminal notifier.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	_, err = a.controller.Login(ctx, email, password)
	return err
}

// Signup prompts for every registration field, the password twice.
func (a *App) Signup(ctx context.Context) error {
	var f session.SignupFields

	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter name", &f.Name},
		{"Enter age", &f.Age},
		{"Enter martial art", &f.MartialArt},
		{"Enter email", &f.Email},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.text, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	var err error
	if f.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if f.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	_, err = a.controller.Signup(ctx, f)
	return err
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "You are not logged in.")
		return nil
	}
	return a.controller.Logout(ctx, func() bool {
		return confirm(a.reader, logoutQuestion, a.out)
	})
}

// Profile fetches the profile from the server and prints it as JSON.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return session.ErrUnauthenticated
	}

	p, err := a.controller.Profile(ctx)
	if err != nil {
		var apiErr *api.Error
		switch {
		case errors.Is(err, session.ErrUnauthenticated):
			fmt.Fprintln(a.out, "[error] Your session has expired, please log in again.")
		case errors.As(err, &apiErr) && apiErr.Message != "":
			fmt.Fprintln(a.out, "[error] "+apiErr.Message)
		default:
			fmt.Fprintln(a.out, "[error] "+session.MsgConnection)
		}
		return err
	}

	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

// Status prints the session state, the user and, for JWTs, the token expiry.
func (a *App) Status(ctx context.Context) error {
	s, ok := a.controller.Current()
	if !ok {
		fmt.Fprintf(a.out, "State: %s\n", a.controller.State())
		return nil
	}

	fmt.Fprintf(a.out, "State: %s\nUser: %s\n", session.StateAuthenticated, s.User.Name)
	if exp, ok := s.ExpiresAt(); ok {
		fmt.Fprintf(a.out, "Token expires: %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}
