package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/chatapp/pkg/models"
	"github.com/oarkflow/chatapp/pkg/storage"
)

func TestRestoreFromStore(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.Set("chatapp", []byte(`{"success":true,"message":"ok","username":"ada"}`)))

	auth := NewAuthContext()
	found, err := Restore(auth, store, "chatapp")
	require.NoError(t, err)
	require.True(t, found)

	user, ok := auth.AuthUser()
	require.True(t, ok)
	var username string
	assert.True(t, user.Field("username", &username))
	assert.Equal(t, "ada", username)
}

func TestRestoreMissingAndCorrupt(t *testing.T) {
	store := storage.NewMemoryStorage()
	auth := NewAuthContext()

	found, err := Restore(auth, store, "chatapp")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set("chatapp", []byte("{broken")))
	_, err = Restore(auth, store, "chatapp")
	assert.Error(t, err)
	_, ok := auth.AuthUser()
	assert.False(t, ok)
}

func TestSubscribeAndClear(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.Set("chatapp", []byte(`{}`)))
	auth := NewAuthContext()

	var seen []bool
	auth.Subscribe(func(u *models.RegisterResponse) { seen = append(seen, u != nil) })

	auth.SetAuthUser(models.RegisterResponse{Success: true})
	require.NoError(t, auth.Clear(store, "chatapp"))

	assert.Equal(t, []bool{true, false}, seen)
	_, ok := auth.AuthUser()
	assert.False(t, ok)
	_, ok, _ = store.Get("chatapp")
	assert.False(t, ok)
}

func TestSubscribeFromListenerSeesOnlyLaterChanges(t *testing.T) {
	auth := NewAuthContext()
	var late []bool
	auth.Subscribe(func(*models.RegisterResponse) {
		auth.Subscribe(func(u *models.RegisterResponse) { late = append(late, u != nil) })
	})

	auth.SetAuthUser(models.RegisterResponse{Success: true})
	assert.Empty(t, late)

	require.NoError(t, auth.Clear(nil, "chatapp"))
	assert.Equal(t, []bool{false}, late)
}
