package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is an authenticated client context.
type Session struct {
	Token string
	User  UserProfile
}

// ExpiresAt reports the "exp" claim when Token is a JWT. The signature is not
// checked; the value is informational and never used to change state.
func (s Session) ExpiresAt() (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

var errProfileNotObject = errors.New("user profile is not a JSON object")

// UserProfile is the user as returned by the API. Only Name ("nome") is
// interpreted; every other field is kept in Extra and written back as is.
type UserProfile struct {
	Name  string
	Extra map[string]json.RawMessage
}

func (p UserProfile) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(p.Extra)+1)
	for k, v := range p.Extra {
		m[k] = v
	}
	name, err := json.Marshal(p.Name)
	if err != nil {
		return nil, err
	}
	m["nome"] = name
	return json.Marshal(m)
}

func (p *UserProfile) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if m == nil {
		return errProfileNotObject
	}

	var name string
	if raw, ok := m["nome"]; ok {
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("nome: %w", err)
		}
		delete(m, "nome")
	}

	p.Name = name
	p.Extra = nil
	if len(m) > 0 {
		p.Extra = m
	}
	return nil
}
