// Package session holds the single current-user slot and its two states.
//
// Anonymous -> Authenticated happens through Login or Register.
// Authenticated -> Anonymous happens through Logout.
// At startup Restore re-enters Authenticated when a persisted account exists;
// sessions never expire on their own.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/apartmanager/internal/auth"
	"github.com/mmynk/apartmanager/internal/models"
)

// ErrNotAuthenticated is returned when an operation needs a current user.
var ErrNotAuthenticated = errors.New("no user is signed in")

// State is the session state.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Slot persists the current account.
type Slot interface {
	CurrentUser(ctx context.Context) (*models.UserAccount, error)
	SetCurrentUser(ctx context.Context, user *models.UserAccount) error
}

// Manager owns the session slot. Create one at startup and pass it to
// whatever needs the current user.
type Manager struct {
	mu            sync.RWMutex
	slot          Slot
	authenticator auth.Authenticator
	current       *models.UserAccount
}

// NewManager creates an anonymous session manager.
func NewManager(slot Slot, authenticator auth.Authenticator) *Manager {
	return &Manager{slot: slot, authenticator: authenticator}
}

// Restore loads the persisted account, if any.
func (m *Manager) Restore(ctx context.Context) error {
	user, err := m.slot.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
	if user != nil {
		slog.Info("Session restored", "user_id", user.ID, "role", user.Role)
	}
	return nil
}

// Login authenticates and fills the slot.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.UserAccount, error) {
	user, err := m.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.enter(ctx, user); err != nil {
		return nil, err
	}
	return clone(user), nil
}

// Register fabricates a resident account and fills the slot.
func (m *Manager) Register(ctx context.Context, email, name, apartmentID string) (*models.UserAccount, error) {
	user, err := m.authenticator.Register(ctx, email, name, apartmentID)
	if err != nil {
		return nil, err
	}
	if err := m.enter(ctx, user); err != nil {
		return nil, err
	}
	return clone(user), nil
}

// Logout clears the slot. Logging out while anonymous is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.slot.SetCurrentUser(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if m.current != nil {
		slog.Info("Session ended", "user_id", m.current.ID)
	}
	m.current = nil
	return nil
}

// Current returns a copy of the signed-in account, or nil.
func (m *Manager) Current() *models.UserAccount {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.current)
}

// State reports whether someone is signed in.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Anonymous
	}
	return Authenticated
}

// IsCurrent reports whether userID is the signed-in account.
func (m *Manager) IsCurrent(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.ID == userID
}

func (m *Manager) enter(ctx context.Context, user *models.UserAccount) error {
	stored := clone(user)
	stored.Password = ""

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.slot.SetCurrentUser(ctx, stored); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.current = stored
	slog.Info("Session started", "user_id", stored.ID, "role", stored.Role)
	return nil
}

func clone(u *models.UserAccount) *models.UserAccount {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
