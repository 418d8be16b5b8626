// Package records is the typed record store: one JSON-encoded collection per
// key on top of a storage.KV, with the version-gated seed reset.
//
// Writes always replace a whole collection. Callers read, modify and save the
// full slice; there is no partial update.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/apartmanager/internal/metrics"
	"github.com/mmynk/apartmanager/internal/models"
	"github.com/mmynk/apartmanager/internal/storage"
)

// Storage keys, one per collection.
const (
	KeyFees          = "apt_manager_fees"
	KeyResidents     = "apt_manager_residents"
	KeyNotifications = "apt_manager_notifications"
	KeyActivities    = "apt_manager_activities"
	KeyPoolTickets   = "apt_manager_pool_tickets"
	KeyFeedback      = "apt_manager_feedback"
	KeyCurrentUser   = "apt_manager_current_user"
	KeyVersion       = "apt_manager_db_version"
)

// ErrMalformed is returned when a stored collection cannot be decoded.
var ErrMalformed = errors.New("malformed stored collection")

// Store reads and writes typed collections.
//
// Store does not lock internally. Every read-modify-write sequence, Reset
// included, must run between Lock and Unlock so writers of the same
// collection cannot interleave.
type Store struct {
	writeMu sync.Mutex

	kv               storage.KV
	version          string
	recoverMalformed bool
	metrics          *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithVersion sets the expected schema-version stamp (default DefaultVersion).
func WithVersion(v string) Option {
	return func(s *Store) {
		if v != "" {
			s.version = v
		}
	}
}

// WithRecoverMalformed makes undecodable collections fall back to their seed
// (or to empty) instead of returning ErrMalformed.
func WithRecoverMalformed(enabled bool) Option {
	return func(s *Store) { s.recoverMalformed = enabled }
}

// WithMetrics records store operations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New wraps kv.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, version: DefaultVersion}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lock acquires the store-wide write lock.
func (s *Store) Lock() { s.writeMu.Lock() }

// Unlock releases the store-wide write lock.
func (s *Store) Unlock() { s.writeMu.Unlock() }

// Version returns the expected schema-version stamp.
func (s *Store) Version() string {
	return s.version
}

// Fees returns the fee collection, seeding it on first run or after a version bump.
func (s *Store) Fees(ctx context.Context) ([]models.FeeItem, error) {
	return loadSeeded(ctx, s, KeyFees, SeedFees)
}

// SaveFees overwrites the fee collection.
func (s *Store) SaveFees(ctx context.Context, fees []models.FeeItem) error {
	return saveList(ctx, s, KeyFees, fees)
}

// Residents returns the resident collection, seeding it on first run or after a version bump.
func (s *Store) Residents(ctx context.Context) ([]models.Resident, error) {
	return loadSeeded(ctx, s, KeyResidents, SeedResidents)
}

// SaveResidents overwrites the resident collection.
func (s *Store) SaveResidents(ctx context.Context, residents []models.Resident) error {
	return saveList(ctx, s, KeyResidents, residents)
}

// Notifications returns the board notifications; empty when none are stored.
func (s *Store) Notifications(ctx context.Context) ([]models.AppNotification, error) {
	return loadOptional[models.AppNotification](ctx, s, KeyNotifications)
}

// Activities returns the community activities; empty when none are stored.
func (s *Store) Activities(ctx context.Context) ([]models.Activity, error) {
	return loadOptional[models.Activity](ctx, s, KeyActivities)
}

// PoolTickets returns the pool bookings; empty when none are stored.
func (s *Store) PoolTickets(ctx context.Context) ([]models.PoolTicket, error) {
	return loadOptional[models.PoolTicket](ctx, s, KeyPoolTickets)
}

// Feedback returns submitted feedback; empty when none is stored.
func (s *Store) Feedback(ctx context.Context) ([]models.Feedback, error) {
	return loadOptional[models.Feedback](ctx, s, KeyFeedback)
}

// SaveFeedback overwrites the feedback collection.
func (s *Store) SaveFeedback(ctx context.Context, items []models.Feedback) error {
	return saveList(ctx, s, KeyFeedback, items)
}

// CurrentUser returns the account in the session slot, or nil when the slot is empty.
func (s *Store) CurrentUser(ctx context.Context) (*models.UserAccount, error) {
	raw, ok, err := s.get(ctx, KeyCurrentUser)
	if err != nil || !ok {
		return nil, err
	}
	var user models.UserAccount
	if err := json.Unmarshal(raw, &user); err != nil {
		if !s.recoverMalformed {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, KeyCurrentUser, err)
		}
		slog.Warn("Clearing malformed session slot", "key", KeyCurrentUser, "error", err)
		return nil, s.delete(ctx, KeyCurrentUser)
	}
	return &user, nil
}

// SetCurrentUser fills the session slot, or clears it when user is nil.
// The password is never persisted.
func (s *Store) SetCurrentUser(ctx context.Context, user *models.UserAccount) error {
	if user == nil {
		return s.delete(ctx, KeyCurrentUser)
	}
	stored := *user
	stored.Password = ""
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", KeyCurrentUser, err)
	}
	return s.set(ctx, KeyCurrentUser, raw)
}

// Reset overwrites fees and residents with the seed data and stamps the
// current version.
func (s *Store) Reset(ctx context.Context) error {
	if err := saveList(ctx, s, KeyFees, SeedFees()); err != nil {
		return err
	}
	if err := saveList(ctx, s, KeyResidents, SeedResidents()); err != nil {
		return err
	}
	if err := s.set(ctx, KeyVersion, []byte(s.version)); err != nil {
		return err
	}
	s.metrics.IncReseed()
	slog.Info("Record store reset to seed data", "version", s.version)
	return nil
}

// ensureSeed resets the seeded collections when the stored version stamp
// differs from the expected one, including when it is missing.
func (s *Store) ensureSeed(ctx context.Context) error {
	stored, ok, err := s.get(ctx, KeyVersion)
	if err != nil {
		return err
	}
	if ok && string(stored) == s.version {
		return nil
	}
	slog.Info("Schema version mismatch, reseeding", "stored", string(stored), "expected", s.version)
	return s.Reset(ctx)
}

func loadSeeded[T any](ctx context.Context, s *Store, key string, seed func() []T) ([]T, error) {
	if err := s.ensureSeed(ctx); err != nil {
		return nil, err
	}
	items, found, err := loadList[T](ctx, s, key)
	if errors.Is(err, ErrMalformed) && s.recoverMalformed {
		slog.Warn("Reseeding malformed collection", "key", key, "error", err)
		found, err = false, nil
	}
	if err != nil {
		return nil, err
	}
	if !found {
		items = seed()
		if err := saveList(ctx, s, key, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func loadOptional[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	items, found, err := loadList[T](ctx, s, key)
	if errors.Is(err, ErrMalformed) && s.recoverMalformed {
		slog.Warn("Clearing malformed collection", "key", key, "error", err)
		return []T{}, s.delete(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	if !found || items == nil {
		return []T{}, nil
	}
	return items, nil
}

func loadList[T any](ctx context.Context, s *Store, key string) ([]T, bool, error) {
	raw, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return items, true, nil
}

func saveList[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.set(ctx, key, raw)
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	s.metrics.ObserveStore(key, "get")
	return s.kv.Get(ctx, key)
}

func (s *Store) set(ctx context.Context, key string, value []byte) error {
	s.metrics.ObserveStore(key, "set")
	return s.kv.Set(ctx, key, value)
}

func (s *Store) delete(ctx context.Context, key string) error {
	s.metrics.ObserveStore(key, "delete")
	return s.kv.Delete(ctx, key)
}
