package form_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/chatapp/pkg/form"
	"github.com/oarkflow/chatapp/pkg/models"
	"github.com/oarkflow/chatapp/pkg/notify"
	"github.com/oarkflow/chatapp/pkg/session"
	"github.com/oarkflow/chatapp/pkg/storage"
)

type fakeRegistrar struct {
	mu    sync.Mutex
	calls []models.RegistrationForm
	resp  models.RegisterResponse
	err   error
	block chan struct{}
}

func (f *fakeRegistrar) Register(ctx context.Context, fm models.RegistrationForm) (models.RegisterResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fm)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.resp, f.err
}

func (f *fakeRegistrar) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type countingAuth struct {
	mu       sync.Mutex
	payloads []models.RegisterResponse
}

func (a *countingAuth) SetAuthUser(p models.RegisterResponse) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.payloads = append(a.payloads, p)
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.paths = append(n.paths, path)
}

type fixture struct {
	registrar *fakeRegistrar
	store     *storage.MemoryStorage
	auth      *countingAuth
	nav       *recordingNavigator
	notes     *notify.Recorder
	loading   []bool
	ctrl      *form.Controller
}

func newFixture(opts ...form.Option) *fixture {
	fx := &fixture{
		registrar: &fakeRegistrar{},
		store:     storage.NewMemoryStorage(),
		auth:      &countingAuth{},
		nav:       &recordingNavigator{},
		notes:     &notify.Recorder{},
	}
	opts = append([]form.Option{
		form.WithNotifier(fx.notes),
		form.WithLoadingObserver(func(l bool) { fx.loading = append(fx.loading, l) }),
	}, opts...)
	fx.ctrl = form.New(fx.registrar, fx.store, fx.auth, fx.nav, opts...)
	return fx
}

func (fx *fixture) fill(password, confirm string) {
	fx.ctrl.UpdateField(models.FieldFullName, "Ada Lovelace")
	fx.ctrl.UpdateField(models.FieldUsername, "ada")
	fx.ctrl.UpdateField(models.FieldEmail, "ada@example.com")
	fx.ctrl.UpdateField(models.FieldPassword, password)
	fx.ctrl.UpdateField(models.FieldConfirmPassword, confirm)
}

func successPayload() models.RegisterResponse {
	return models.RegisterResponse{
		Success: true,
		Message: "User registered successfully",
		Extra: map[string]json.RawMessage{
			"_id":      json.RawMessage(`"66f1"`),
			"username": json.RawMessage(`"ada"`),
		},
	}
}

func TestUpdateFieldReplacesOnlyThatField(t *testing.T) {
	fx := newFixture()
	fx.fill("abc123", "abc123")
	fx.ctrl.UpdateField(models.FieldEmail, "lovelace@example.com")
	fx.ctrl.UpdateField("nickname", "ignored")

	want := models.RegistrationForm{
		FullName:        "Ada Lovelace",
		Username:        "ada",
		Email:           "lovelace@example.com",
		Password:        "abc123",
		ConfirmPassword: "abc123",
	}
	if diff := cmp.Diff(want, fx.ctrl.Form()); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleGender(t *testing.T) {
	fx := newFixture()

	fx.ctrl.ToggleGender(models.GenderMale)
	assert.Equal(t, models.GenderMale, fx.ctrl.Form().Gender)
	fx.ctrl.ToggleGender(models.GenderMale)
	assert.Equal(t, models.GenderUnset, fx.ctrl.Form().Gender)

	fx.ctrl.ToggleGender(models.GenderMale)
	fx.ctrl.ToggleGender(models.GenderFemale)
	assert.Equal(t, models.GenderFemale, fx.ctrl.Form().Gender)
}

func TestSubmitPasswordMismatch(t *testing.T) {
	fx := newFixture()
	fx.fill("abc123", "xyz999")

	_, err := fx.ctrl.Submit(context.Background())

	require.ErrorIs(t, err, form.ErrPasswordMismatch)
	assert.Zero(t, fx.registrar.callCount())
	assert.False(t, fx.ctrl.Loading())
	assert.Equal(t, form.StateIdle, fx.ctrl.State())
	assert.Equal(t, []bool{true, false}, fx.loading)
	last, ok := fx.notes.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Message{Level: "error", Text: "Passwords don't match"}, last)
}

func TestSubmitSuccess(t *testing.T) {
	fx := newFixture()
	fx.registrar.resp = successPayload()
	fx.fill("abc123", "abc123")
	fx.ctrl.ToggleGender(models.GenderFemale)

	resp, err := fx.ctrl.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, fx.registrar.calls, 1)
	assert.Equal(t, fx.ctrl.Form(), fx.registrar.calls[0])

	require.Len(t, fx.auth.payloads, 1)
	if diff := cmp.Diff(successPayload(), fx.auth.payloads[0]); diff != "" {
		t.Fatalf("auth payload mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, successPayload(), resp)

	stored, ok, err := fx.store.Get("chatapp")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"success":true,"message":"User registered successfully","_id":"66f1","username":"ada"}`, string(stored))

	assert.Equal(t, []string{"/login"}, fx.nav.paths)
	assert.False(t, fx.ctrl.Loading())
	assert.Equal(t, form.StateNavigated, fx.ctrl.State())
	last, _ := fx.notes.Last()
	assert.Equal(t, notify.Message{Level: "success", Text: "User registered successfully"}, last)
}

func TestSubmitServerFailureKeepsForm(t *testing.T) {
	fx := newFixture()
	fx.registrar.resp = models.RegisterResponse{Success: false, Message: "Username already exists"}
	fx.fill("abc123", "abc123")
	before := fx.ctrl.Form()

	_, err := fx.ctrl.Submit(context.Background())

	var serverErr *form.ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, "Username already exists", serverErr.Message)
	assert.Empty(t, fx.nav.paths)
	assert.Empty(t, fx.auth.payloads)
	assert.Equal(t, before, fx.ctrl.Form())
	assert.False(t, fx.ctrl.Loading())
	_, ok, _ := fx.store.Get("chatapp")
	assert.False(t, ok)
	last, _ := fx.notes.Last()
	assert.Equal(t, "Username already exists", last.Text)
}

func TestSubmitTransportFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "server supplied", err: &form.TransportError{Status: 400, Message: "Email already in use"}, wantMsg: "Email already in use"},
		{name: "fallback", err: &form.TransportError{Err: errors.New("connection refused")}, wantMsg: "Registration failed"},
		{name: "unclassified", err: errors.New("boom"), wantMsg: "Registration failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			fx.registrar.err = tt.err
			fx.fill("abc123", "abc123")

			_, err := fx.ctrl.Submit(context.Background())

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, form.UserMessage(err))
			assert.False(t, fx.ctrl.Loading())
			assert.Equal(t, form.StateIdle, fx.ctrl.State())
			assert.Empty(t, fx.nav.paths)
			last, _ := fx.notes.Last()
			assert.Equal(t, notify.Message{Level: "error", Text: tt.wantMsg}, last)
		})
	}
}

func TestSubmitRetryAfterFailure(t *testing.T) {
	fx := newFixture()
	fx.registrar.resp = models.RegisterResponse{Success: false, Message: "Username already exists"}
	fx.fill("abc123", "abc123")
	_, err := fx.ctrl.Submit(context.Background())
	require.Error(t, err)

	fx.ctrl.UpdateField(models.FieldUsername, "ada2")
	fx.registrar.resp = successPayload()
	_, err = fx.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fx.registrar.callCount())
	assert.Equal(t, "ada2", fx.registrar.calls[1].Username)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	fx := newFixture()
	fx.registrar.resp = successPayload()
	fx.registrar.block = make(chan struct{})
	fx.fill("abc123", "abc123")

	started := make(chan struct{})
	fx.ctrl = form.New(fx.registrar, fx.store, fx.auth, fx.nav,
		form.WithInitial(fx.ctrl.Form()),
		form.WithLoadingObserver(func(l bool) {
			if l {
				close(started)
			}
		}),
	)

	errc := make(chan error, 1)
	go func() {
		_, err := fx.ctrl.Submit(context.Background())
		errc <- err
	}()
	<-started

	assert.True(t, fx.ctrl.Loading())
	assert.Equal(t, "Registering...", fx.ctrl.ButtonLabel())
	_, err := fx.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, form.ErrSubmitInFlight)

	close(fx.registrar.block)
	require.NoError(t, <-errc)
	assert.Equal(t, 1, fx.registrar.callCount())
	assert.Equal(t, "Register", fx.ctrl.ButtonLabel())

	_, err = fx.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, form.ErrNavigated)
}

func TestSubmitCustomKeyAndLoginPath(t *testing.T) {
	fx := newFixture(form.WithStorageKey("chat-session"), form.WithLoginPath("/signin"))
	fx.registrar.resp = successPayload()
	fx.fill("pw", "pw")

	_, err := fx.ctrl.Submit(context.Background())
	require.NoError(t, err)

	_, ok, _ := fx.store.Get("chat-session")
	assert.True(t, ok)
	assert.Equal(t, []string{"/signin"}, fx.nav.paths)
}

func TestSubmitUpdatesSharedAuthContext(t *testing.T) {
	auth := session.NewAuthContext()
	registrar := &fakeRegistrar{resp: successPayload()}
	store := storage.NewMemoryStorage()
	ctrl := form.New(registrar, store, auth, &recordingNavigator{})
	ctrl.UpdateField(models.FieldPassword, "pw")
	ctrl.UpdateField(models.FieldConfirmPassword, "pw")

	_, err := ctrl.Submit(context.Background())
	require.NoError(t, err)

	user, ok := auth.AuthUser()
	require.True(t, ok)
	assert.Equal(t, successPayload(), user)
}
