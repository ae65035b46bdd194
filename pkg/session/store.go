package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/auth"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
)

// State is one coherent snapshot of the session. Readers get copies; the
// store never hands out a reference that a later mutation could change
// under them.
type State struct {
	User          user.UserResponse
	Authenticated bool
	Loading       bool
	ActivePortal  permission.Portal
	Permissions   permission.Map
}

// Store is the client-side session: who is signed in, which portal they are
// working in, and what the permission map allows. All methods are safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	api    API
	tokens TokenStore

	state State
	cred  Credential
}

func New(api API, tokens TokenStore) *Store {
	return &Store{api: api, tokens: tokens}
}

// State returns a snapshot of the current session.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LoadUser restores the session from the persisted credential. No stored
// credential is a clean signed-out state, not an error. A credential the
// server rejects, or a transport failure, clears the credential and leaves
// the store unauthenticated; the error is returned for logging.
func (s *Store) LoadUser(ctx context.Context) error {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	cred, err := s.tokens.Load()
	if err != nil {
		s.reset()
		if errors.Is(err, ErrNoCredential) {
			return nil
		}
		return err
	}

	session, err := s.api.Me(ctx, cred)
	if err != nil {
		_ = s.tokens.Clear()
		s.reset()
		return err
	}

	s.mu.Lock()
	s.cred = cred
	s.applySession(session)
	s.mu.Unlock()
	return nil
}

// Login authenticates and establishes the session. The credential is
// persisted only when remember is set; either way the in-memory session is
// fully established. A failed attempt returns the error for display and
// leaves whatever session existed before untouched.
func (s *Store) Login(ctx context.Context, email, password string, remember bool) error {
	resp, err := s.api.Login(ctx, email, password, remember)
	if err != nil {
		return err
	}

	cred := Credential{Token: resp.AccessToken, Type: user.SessionTypeUser}
	if remember {
		if err := s.tokens.Save(cred); err != nil {
			slog.Warn("failed to persist credential", "error", err)
		}
	}

	s.mu.Lock()
	s.cred = cred
	s.applySession(resp.SessionResponse)
	s.mu.Unlock()
	return nil
}

// Logout tells the server, then clears local state. A failed server call is
// logged and swallowed: locally the user is signed out regardless.
func (s *Store) Logout(ctx context.Context) {
	s.mu.RLock()
	cred := s.cred
	s.mu.RUnlock()

	if cred.Token != "" {
		if err := s.api.Logout(ctx, cred); err != nil {
			slog.Warn("logout request failed", "error", err)
		}
	}

	_ = s.tokens.Clear()
	s.reset()
}

// SetUser replaces the stored user and rebuilds the permission map. An empty
// session is ignored, and the authenticated flag is never touched: only
// Login/LoadUser establish a session. The working portal is kept as long as
// the new map still holds screens in it.
func (s *Store) SetUser(session auth.SessionResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.User.ID == "" {
		return
	}

	m := permission.BuildMap(session.Permissions)
	s.state.User = session.User
	s.state.Permissions = m
	if screens, ok := m[s.state.ActivePortal]; !ok || len(screens) == 0 {
		s.state.ActivePortal = permission.ActivePortal(m)
	}
}

// SetPortal switches the working portal. Invalid portals and portals the
// user holds no permissions in are ignored.
func (s *Store) SetPortal(p permission.Portal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.IsValid() {
		return
	}
	if screens, ok := s.state.Permissions[p]; !ok || len(screens) == 0 {
		return
	}
	s.state.ActivePortal = p
}

// Capability resolves a screen of the active portal. Absent screens yield
// the zero record.
func (s *Store) Capability(name string) permission.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return permission.Capability(s.state.Permissions, s.state.ActivePortal, name)
}

// SubCapability resolves a tab within a screen of the active portal.
func (s *Store) SubCapability(name string, subID int) permission.SubRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return permission.SubCapability(s.state.Permissions, s.state.ActivePortal, name, subID)
}

// Guard reports whether the named route may be entered: guest routes always,
// portal routes only when authenticated and the backing screen is viewable.
func (s *Store) Guard(routeName string) bool {
	return Guard(s.State(), routeName)
}

// applySession must run under the write lock.
func (s *Store) applySession(session auth.SessionResponse) {
	m := permission.BuildMap(session.Permissions)
	s.state = State{
		User:          session.User,
		Authenticated: true,
		Loading:       false,
		ActivePortal:  permission.ActivePortal(m),
		Permissions:   m,
	}
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	s.cred = Credential{}
}
