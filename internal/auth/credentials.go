package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/apartmanager/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingEmail       = errors.New("email is required")
)

// Credential is one entry of the fixed login list.
type Credential struct {
	ID       string
	Email    string
	Name     string
	Password string
	Role     models.Role
}

// DefaultCredentials is the built-in administrator login.
func DefaultCredentials() []Credential {
	return []Credential{
		{ID: "admin", Email: "admin@apart.vn", Name: "admin", Password: "123456", Role: models.RoleAdmin},
	}
}

// CredentialAuthenticator checks logins against a fixed list and
// fabricates resident accounts on registration.
type CredentialAuthenticator struct {
	credentials []Credential
	now         func() time.Time

	mu     sync.Mutex
	lastID int64
}

// NewCredentialAuthenticator creates an authenticator over creds.
// A nil now uses time.Now.
func NewCredentialAuthenticator(creds []Credential, now func() time.Time) *CredentialAuthenticator {
	if now == nil {
		now = time.Now
	}
	return &CredentialAuthenticator{
		credentials: creds,
		now:         now,
	}
}

// Register creates a resident account with a millisecond timestamp ID.
// IDs strictly increase, so two registrations in the same millisecond never
// share one.
func (a *CredentialAuthenticator) Register(ctx context.Context, email, name, apartmentID string) (*models.UserAccount, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	return &models.UserAccount{
		ID:          strconv.FormatInt(a.nextID(), 10),
		Email:       email,
		Name:        name,
		Role:        models.RoleResident,
		ApartmentID: apartmentID,
	}, nil
}

// Authenticate matches (email, password) exactly against the list.
func (a *CredentialAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.UserAccount, error) {
	for _, c := range a.credentials {
		if c.Email != email || !passwordMatches(c.Password, credential) {
			continue
		}
		role := c.Role
		if role == "" {
			role = models.RoleAdmin
		}
		id := c.ID
		if id == "" {
			id = c.Email
		}
		return &models.UserAccount{
			ID:    id,
			Email: c.Email,
			Name:  c.Name,
			Role:  role,
		}, nil
	}
	return nil, ErrInvalidCredentials
}

func (a *CredentialAuthenticator) nextID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.now().UnixMilli()
	if id <= a.lastID {
		id = a.lastID + 1
	}
	a.lastID = id
	return id
}

// passwordMatches compares plainly unless the stored value is a bcrypt hash.
func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
