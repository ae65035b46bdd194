package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/auth"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
)

func testPayload() permission.Payload {
	return permission.Payload{
		{
			ID: "p1", Portal: "1", Name: "employees",
			View: true, Add: true, Edit: true, Delete: false,
			Visible: true, Priority: 1,
			Sub: []permission.RawSubPermission{
				{ID: 3, View: true, Add: true},
			},
		},
		{
			ID: "p2", Portal: "3", Name: "expenses",
			View: true, Visible: true, Priority: 1,
		},
	}
}

func testSession() auth.SessionResponse {
	return auth.SessionResponse{
		User:        user.UserResponse{ID: "u1", Email: "jo@example.com", FullName: "Jo", Role: "manager"},
		Permissions: testPayload(),
	}
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    data,
	})
}

func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			writeEnvelope(w, http.StatusUnauthorized, false, nil)
			return
		}
		writeEnvelope(w, http.StatusCreated, true, auth.LoginResponse{
			TokenResponse:   auth.TokenResponse{AccessToken: "token-abc"},
			SessionResponse: testSession(),
		})
	})
	mux.HandleFunc("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-abc" {
			writeEnvelope(w, http.StatusUnauthorized, false, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, testSession())
	})
	mux.HandleFunc("/api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, nil)
	})
	return httptest.NewServer(mux)
}

func TestLoginEstablishesSession(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	store := New(NewClient(backend.URL), NewMemoryTokenStore())
	require.NoError(t, store.Login(context.Background(), "jo@example.com", "secret", true))

	state := store.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "u1", state.User.ID)
	// Holds hr and expense screens: hr wins the landing portal.
	assert.Equal(t, permission.PortalHR, state.ActivePortal)
}

func TestLoginFailureStaysSignedOut(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	tokens := NewMemoryTokenStore()
	store := New(NewClient(backend.URL), tokens)

	err := store.Login(context.Background(), "jo@example.com", "wrong", true)
	require.Error(t, err)
	assert.False(t, store.State().Authenticated)

	_, err = tokens.Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestLoginFailureKeepsExistingSession(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	tokens := NewMemoryTokenStore()
	store := New(NewClient(backend.URL), tokens)
	require.NoError(t, store.Login(context.Background(), "jo@example.com", "secret", true))

	// A rejected re-login surfaces the error but leaves the live session
	// and the persisted credential alone.
	err := store.Login(context.Background(), "jo@example.com", "wrong", true)
	require.Error(t, err)

	state := store.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "u1", state.User.ID)

	cred, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-abc", cred.Token)
}

func TestLoginRememberFalseDoesNotPersist(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	tokens := NewMemoryTokenStore()
	store := New(NewClient(backend.URL), tokens)
	require.NoError(t, store.Login(context.Background(), "jo@example.com", "secret", false))

	assert.True(t, store.State().Authenticated)
	_, err := tokens.Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestLoadUserWithoutCredentialIsCleanSignOut(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	store := New(NewClient(backend.URL), NewMemoryTokenStore())
	require.NoError(t, store.LoadUser(context.Background()))
	assert.False(t, store.State().Authenticated)
}

func TestLoadUserRestoresSession(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Save(Credential{Token: "token-abc", Type: user.SessionTypeUser}))

	store := New(NewClient(backend.URL), tokens)
	require.NoError(t, store.LoadUser(context.Background()))

	state := store.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "jo@example.com", state.User.Email)
}

func TestLoadUserRejectedCredentialClearsToken(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Save(Credential{Token: "stale", Type: user.SessionTypeUser}))

	store := New(NewClient(backend.URL), tokens)
	err := store.LoadUser(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)

	assert.False(t, store.State().Authenticated)
	_, err = tokens.Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestLoadUserTransportErrorClearsToken(t *testing.T) {
	backend := newTestBackend(t)
	backend.Close() // connection refused from here on

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Save(Credential{Token: "token-abc", Type: user.SessionTypeUser}))

	store := New(NewClient(backend.URL), tokens)
	err := store.LoadUser(context.Background())
	require.Error(t, err)

	assert.False(t, store.State().Authenticated)
	_, err = tokens.Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestLogoutClearsEverything(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	tokens := NewMemoryTokenStore()
	store := New(NewClient(backend.URL), tokens)
	require.NoError(t, store.Login(context.Background(), "jo@example.com", "secret", true))

	store.Logout(context.Background())

	assert.False(t, store.State().Authenticated)
	_, err := tokens.Load()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSetPortalSwitchesRoutes(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	store := New(NewClient(backend.URL), NewMemoryTokenStore())
	require.NoError(t, store.Login(context.Background(), "jo@example.com", "secret", false))
	require.Equal(t, permission.PortalHR, store.State().ActivePortal)

	store.SetPortal(permission.PortalExpense)
	assert.Equal(t, permission.PortalExpense, store.State().ActivePortal)
	assert.Equal(t, permission.PortalExpense, SelectRoutes(store.State()).Portal)

	// No inventory permissions: switch is ignored.
	store.SetPortal(permission.PortalInventory)
	assert.Equal(t, permission.PortalExpense, store.State().ActivePortal)

	store.SetPortal(permission.Portal("bogus"))
	assert.Equal(t, permission.PortalExpense, store.State().ActivePortal)
}

func TestSetUserEmptySessionIsIgnored(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	store := New(NewClient(backend.URL), NewMemoryTokenStore())
	store.SetUser(auth.SessionResponse{})

	state := store.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.User.ID)
	assert.Empty(t, state.Permissions)
}

func TestSetUserKeepsWorkingPortal(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	store := New(NewClient(backend.URL), NewMemoryTokenStore())
	require.NoError(t, store.Login(context.Background(), "jo@example.com", "secret", false))
	store.SetPortal(permission.PortalExpense)

	// A profile refresh must not bounce the user back to the landing portal.
	refreshed := testSession()
	refreshed.User.FullName = "Jo Renamed"
	store.SetUser(refreshed)

	state := store.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "Jo Renamed", state.User.FullName)
	assert.Equal(t, permission.PortalExpense, state.ActivePortal)

	// When the refreshed map no longer holds the working portal, the
	// landing portal is re-selected.
	hrOnly := testSession()
	hrOnly.Permissions = hrOnly.Permissions[:1]
	store.SetUser(hrOnly)
	assert.Equal(t, permission.PortalHR, store.State().ActivePortal)
}

func TestCapabilityFollowsActivePortal(t *testing.T) {
	backend := newTestBackend(t)
	defer backend.Close()

	store := New(NewClient(backend.URL), NewMemoryTokenStore())
	require.NoError(t, store.Login(context.Background(), "jo@example.com", "secret", false))

	rec := store.Capability("employees")
	assert.True(t, rec.View)
	assert.True(t, rec.Add)

	sub := store.SubCapability("employees", 3)
	assert.True(t, sub.View)
	assert.False(t, sub.Edit)

	// Absent screens read as the zero record.
	assert.Equal(t, permission.Record{}, store.Capability("payroll"))

	store.SetPortal(permission.PortalExpense)
	assert.Equal(t, permission.Record{}, store.Capability("employees"))
	assert.True(t, store.Capability("expenses").View)
}
