package session

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/dojoauth/internal/client/localstore"
)

// Storage keys of the persisted session.
const (
	TokenKey = "token"
	UserKey  = "usuario"
)

type loadResult int

const (
	persistedAbsent loadResult = iota
	persistedValid
	persistedCorrupt
)

func savePersisted(ctx context.Context, store localstore.Store, s Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	return store.SetMany(ctx, map[string]string{
		TokenKey: s.Token,
		UserKey:  string(user),
	})
}

func clearPersisted(ctx context.Context, store localstore.Store) error {
	return store.DeleteMany(ctx, TokenKey, UserKey)
}

// loadPersisted reads the persisted session. Only one of the two keys being
// present, an empty token, or an unparsable user all count as corrupt.
func loadPersisted(ctx context.Context, store localstore.Store) (Session, loadResult, error) {
	token, hasToken, err := store.Get(ctx, TokenKey)
	if err != nil {
		return Session{}, persistedAbsent, err
	}
	rawUser, hasUser, err := store.Get(ctx, UserKey)
	if err != nil {
		return Session{}, persistedAbsent, err
	}

	if !hasToken && !hasUser {
		return Session{}, persistedAbsent, nil
	}
	if !hasToken || !hasUser || token == "" {
		return Session{}, persistedCorrupt, nil
	}

	var user UserProfile
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return Session{}, persistedCorrupt, err
	}
	return Session{Token: token, User: user}, persistedValid, nil
}
