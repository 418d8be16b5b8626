// Package service implements the Connect RPC services of the apartment
// manager: fees, residents, dashboard, auth, community and advisor.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/apartmanager/internal/middleware"
	"github.com/mmynk/apartmanager/internal/models"
)

// PackagePrefix prefixes every procedure path served by this package.
const PackagePrefix = "/apartmanager.v1."

// Service names.
const (
	FeeServiceName       = "apartmanager.v1.FeeService"
	ResidentServiceName  = "apartmanager.v1.ResidentService"
	DashboardServiceName = "apartmanager.v1.DashboardService"
	AuthServiceName      = "apartmanager.v1.AuthService"
	CommunityServiceName = "apartmanager.v1.CommunityService"
	AdvisorServiceName   = "apartmanager.v1.AdvisorService"
)

var (
	// ErrNotFound is returned when an id does not match any record.
	ErrNotFound = errors.New("record not found")
	// ErrOwnerExists is returned when an apartment already has an owner.
	ErrOwnerExists = errors.New("apartment already has an owner, register this resident as a member")
	// ErrAdminOnly is returned when a resident calls an admin operation.
	ErrAdminOnly = errors.New("operation requires the admin role")
	// ErrNoProfile is returned when an admin asks for a resident profile.
	ErrNoProfile = errors.New("admin accounts have no resident profile")
)

// CurrentUser exposes the signed-in account.
type CurrentUser interface {
	Current() *models.UserAccount
}

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

const isoDate = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks struct tags and maps failures to InvalidArgument.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("invalid fields: %s", strings.Join(fields, ", ")))
		}
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// requireAdmin rejects callers whose token does not carry the admin role.
func requireAdmin(ctx context.Context) error {
	if middleware.GetRole(ctx) != models.RoleAdmin {
		return connect.NewError(connect.CodePermissionDenied, ErrAdminOnly)
	}
	return nil
}

// storeError logs a record store failure and hides it behind Internal.
func storeError(op string, err error) error {
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("%s: %w", op, err))
}

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
