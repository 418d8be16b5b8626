package auth

import (
	"context"

	"github.com/mmynk/apartmanager/internal/models"
)

// Authenticator defines how accounts enter the session.
// This abstraction allows swapping the fixed credential list for a real
// identity backend without changing the session or service code.
type Authenticator interface {
	// Register fabricates a resident-role account from the submitted details.
	// No credential is checked.
	Register(ctx context.Context, email, name, apartmentID string) (*models.UserAccount, error)

	// Authenticate verifies the credentials and returns the matching account.
	// Returns ErrInvalidCredentials if nothing matches.
	Authenticate(ctx context.Context, email, credential string) (*models.UserAccount, error)
}
