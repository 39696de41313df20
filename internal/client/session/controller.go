package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/dojoauth/internal/client/api"
	"github.com/dmitrijs2005/dojoauth/internal/client/localstore"
	"github.com/dmitrijs2005/dojoauth/internal/logging"
)

// User-facing texts passed to Notifier.OnMessage.
const (
	MsgMissingFields     = "Please fill in all fields!"
	MsgPasswordMismatch  = "Passwords do not match!"
	MsgPasswordTooShort  = "Password must be at least 6 characters!"
	MsgConnection        = "Connection error. Check that the server is running."
	MsgLoginFailed       = "Login failed"
	MsgSignupFailed      = "Could not create the account"
	MsgSaveFailed        = "Could not save the session on this device."
	MsgLoggedOut         = "Logged out successfully!"
	msgLoginWelcomeFmt   = "Login successful! Welcome, %s"
	msgAccountWelcomeFmt = "Account created! Welcome, %s"
)

// Controller owns the authentication state. It is safe for concurrent use;
// Login and Signup are each single-flight and return ErrBusy on re-entry.
type Controller struct {
	client api.Client
	store  localstore.Store
	notify Notifier
	log    logging.Logger

	mu      sync.Mutex
	state   State
	session Session

	loginBusy  atomic.Bool
	signupBusy atomic.Bool
}

func NewController(client api.Client, store localstore.Store, notify Notifier, log logging.Logger) *Controller {
	if notify == nil {
		notify = NotifierFuncs{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		client: client,
		store:  store,
		notify: notify,
		log:    log.With("component", "session"),
		state:  StateUnknown,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns a copy of the active session.
func (c *Controller) Current() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAuthenticated {
		return Session{}, false
	}
	return c.session, true
}

// Restore loads the persisted session. A corrupt or partial one is removed
// and the controller becomes anonymous; storage errors are only logged.
func (c *Controller) Restore(ctx context.Context) State {
	c.mu.Lock()
	s, res, err := loadPersisted(ctx, c.store)
	switch res {
	case persistedValid:
		c.state, c.session = StateAuthenticated, s
	case persistedCorrupt:
		c.log.Warn(ctx, "discarding corrupt persisted session", "err", err)
		if cerr := clearPersisted(ctx, c.store); cerr != nil {
			c.log.Error(ctx, "clearing persisted session failed", "err", cerr)
		}
		c.state, c.session = StateAnonymous, Session{}
	default:
		if err != nil {
			c.log.Error(ctx, "reading persisted session failed", "err", err)
		}
		c.state, c.session = StateAnonymous, Session{}
	}
	state, user := c.state, c.session.User
	c.mu.Unlock()

	c.log.Info(ctx, "session restored", "state", state.String())
	if state == StateAuthenticated {
		c.notify.OnAuthenticated(user)
	} else {
		c.notify.OnAnonymous()
	}
	return state
}

func (c *Controller) Login(ctx context.Context, email, password string) (Session, error) {
	if !c.loginBusy.CompareAndSwap(false, true) {
		return Session{}, ErrBusy
	}
	defer c.loginBusy.Store(false)

	fields := LoginFields{Email: email, Password: password}
	if err := fields.Validate(); err != nil {
		c.notify.OnMessage(MessageError, validationMessage(err))
		return Session{}, err
	}

	req := fields.request()
	c.log.Info(ctx, "login attempt", "email", req.Email)

	resp, err := c.client.Login(ctx, req)
	if err != nil {
		return Session{}, c.authFailed(ctx, "login", err, MsgLoginFailed)
	}
	return c.establish(ctx, "login", resp, msgLoginWelcomeFmt)
}

func (c *Controller) Signup(ctx context.Context, fields SignupFields) (Session, error) {
	if !c.signupBusy.CompareAndSwap(false, true) {
		return Session{}, ErrBusy
	}
	defer c.signupBusy.Store(false)

	if err := fields.Validate(); err != nil {
		c.notify.OnMessage(MessageError, validationMessage(err))
		return Session{}, err
	}

	req := fields.request()
	c.log.Info(ctx, "signup attempt", "email", req.Email, "martial_art", req.MartialArt)

	resp, err := c.client.Signup(ctx, req)
	if err != nil {
		return Session{}, c.authFailed(ctx, "signup", err, MsgSignupFailed)
	}
	return c.establish(ctx, "signup", resp, msgAccountWelcomeFmt)
}

// Logout ends the session once confirm returns true. It is a no-op when no
// session is active or the user declines; a nil confirm counts as declined.
func (c *Controller) Logout(ctx context.Context, confirm func() bool) error {
	if c.State() != StateAuthenticated {
		return nil
	}
	if confirm == nil || !confirm() {
		c.log.Debug(ctx, "logout declined")
		return nil
	}

	c.mu.Lock()
	if c.state != StateAuthenticated {
		// ended while the user was answering
		c.mu.Unlock()
		return nil
	}
	err := clearPersisted(ctx, c.store)
	c.state, c.session = StateAnonymous, Session{}
	c.mu.Unlock()

	c.notify.OnAnonymous()
	if err != nil {
		c.log.Error(ctx, "clearing persisted session failed", "err", err)
		c.notify.OnMessage(MessageError, MsgSaveFailed)
		return fmt.Errorf("clear session: %w", err)
	}

	c.log.Info(ctx, "logged out")
	c.notify.OnMessage(MessageSuccess, MsgLoggedOut)
	return nil
}

// FetchProtectedResource GETs path with the session token and returns the
// body unchanged. A 401/403 ends the session and yields ErrUnauthenticated.
// Other failures leave the state alone.
func (c *Controller) FetchProtectedResource(ctx context.Context, path string) (json.RawMessage, error) {
	s, ok := c.Current()
	if !ok {
		c.log.Debug(ctx, "protected fetch without session", "path", path)
		return nil, ErrUnauthenticated
	}

	body, err := c.client.GetProtected(ctx, path, s.Token)
	if err == nil {
		return body, nil
	}

	if errors.Is(err, api.ErrUnauthorized) {
		c.log.Warn(ctx, "token refused, forcing logout", "path", path)
		c.forceLogout(ctx, s.Token)
		return nil, ErrUnauthenticated
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		c.log.Info(ctx, "protected fetch rejected", "path", path, "status", apiErr.StatusCode)
		return nil, err
	}

	c.log.Error(ctx, "protected fetch failed", "path", path, "err", err)
	return nil, fmt.Errorf("%w: %w", ErrConnection, err)
}

// Profile fetches the full user profile.
func (c *Controller) Profile(ctx context.Context) (UserProfile, error) {
	body, err := c.FetchProtectedResource(ctx, api.ProfilePath)
	if err != nil {
		return UserProfile{}, err
	}
	var p UserProfile
	if err := json.Unmarshal(body, &p); err != nil {
		c.log.Error(ctx, "decoding profile failed", "err", err)
		return UserProfile{}, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return p, nil
}

// forceLogout ends the session only if it is still the one that sent token;
// a refusal that arrives after a new login must not end the new session.
func (c *Controller) forceLogout(ctx context.Context, token string) {
	c.mu.Lock()
	if c.state != StateAuthenticated || c.session.Token != token {
		c.mu.Unlock()
		c.log.Info(ctx, "ignoring stale authorization failure")
		return
	}
	err := clearPersisted(ctx, c.store)
	c.state, c.session = StateAnonymous, Session{}
	c.mu.Unlock()

	if err != nil {
		c.log.Error(ctx, "clearing persisted session failed", "err", err)
	}
	c.notify.OnAnonymous()
}

// establish persists and activates the session from a successful response.
// The last response to arrive wins.
func (c *Controller) establish(ctx context.Context, op string, resp *api.AuthResponse, welcomeFmt string) (Session, error) {
	var user UserProfile
	if err := json.Unmarshal(resp.User, &user); err != nil {
		return Session{}, c.authFailed(ctx, op, fmt.Errorf("%w: usuario: %w", api.ErrMalformedResponse, err), "")
	}
	s := Session{Token: resp.Token, User: user}

	c.mu.Lock()
	if err := savePersisted(ctx, c.store, s); err != nil {
		if cerr := clearPersisted(ctx, c.store); cerr != nil {
			c.log.Error(ctx, "clearing persisted session failed", "err", cerr)
		}
		c.mu.Unlock()
		c.log.Error(ctx, "persisting session failed", "op", op, "err", err)
		c.notify.OnMessage(MessageError, MsgSaveFailed)
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	prev := c.state
	c.state, c.session = StateAuthenticated, s
	c.mu.Unlock()

	c.log.Info(ctx, "session established", "op", op, "user", user.Name, "previous", prev.String())
	c.notify.OnMessage(MessageSuccess, fmt.Sprintf(welcomeFmt, user.Name))
	c.notify.OnAuthenticated(user)
	return s, nil
}

// authFailed reports a failed login or signup. Server messages are shown
// verbatim; transport problems get a generic text and the cause is logged.
func (c *Controller) authFailed(ctx context.Context, op string, err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		c.log.Info(ctx, op+" rejected", "status", apiErr.StatusCode, "message", apiErr.Message)
		c.notify.OnMessage(MessageError, msg)
		return err
	}

	c.log.Error(ctx, op+" failed", "err", err)
	c.notify.OnMessage(MessageError, MsgConnection)
	return fmt.Errorf("%w: %w", ErrConnection, err)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, ErrPasswordTooShort):
		return MsgPasswordTooShort
	default:
		return MsgMissingFields
	}
}
