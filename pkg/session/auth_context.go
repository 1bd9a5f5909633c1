package session

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/oarkflow/chatapp/pkg/contracts"
	"github.com/oarkflow/chatapp/pkg/models"
)

// AuthContext holds the authenticated user shared across a client.
type AuthContext struct {
	mu        sync.RWMutex
	user      *models.RegisterResponse
	listeners []func(*models.RegisterResponse)
}

func NewAuthContext() *AuthContext {
	return &AuthContext{}
}

// SetAuthUser replaces the current user and notifies subscribers.
func (a *AuthContext) SetAuthUser(payload models.RegisterResponse) {
	a.mu.Lock()
	p := payload
	a.user = &p
	listeners := slices.Clone(a.listeners)
	a.mu.Unlock()
	for _, fn := range listeners {
		fn(&p)
	}
}

func (a *AuthContext) AuthUser() (models.RegisterResponse, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return models.RegisterResponse{}, false
	}
	return *a.user, true
}

// Subscribe registers fn to run on every change; nil means signed out.
func (a *AuthContext) Subscribe(fn func(*models.RegisterResponse)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// Clear signs the user out and removes the persisted payload.
func (a *AuthContext) Clear(store contracts.Store, key string) error {
	a.mu.Lock()
	a.user = nil
	listeners := slices.Clone(a.listeners)
	a.mu.Unlock()
	for _, fn := range listeners {
		fn(nil)
	}
	if store == nil {
		return nil
	}
	return store.Delete(key)
}

// Restore loads a previously persisted payload from store into a. It
// reports whether a payload was found.
func Restore(a *AuthContext, store contracts.Store, key string) (bool, error) {
	data, ok, err := store.Get(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	var payload models.RegisterResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	a.SetAuthUser(payload)
	return true, nil
}
