package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/apartmanager/internal/calculator"
	"github.com/mmynk/apartmanager/internal/models"
	"github.com/mmynk/apartmanager/internal/records"
	"github.com/mmynk/apartmanager/internal/rpc"
	"github.com/mmynk/apartmanager/internal/session"
)

// DashboardService serves the derived statistics and the role-specific
// home view.
type DashboardService struct {
	store *records.Store
	users CurrentUser
	now   Clock
}

// NewDashboardService creates a DashboardService. A nil clock uses time.Now.
func NewDashboardService(store *records.Store, users CurrentUser, now Clock) *DashboardService {
	return &DashboardService{store: store, users: users, now: clockOrNow(now)}
}

// NewDashboardServiceHandler builds the HTTP handler for svc.
func NewDashboardServiceHandler(svc *DashboardService, opts ...connect.HandlerOption) (string, http.Handler) {
	s := rpc.NewService(DashboardServiceName, opts...)
	rpc.Handle(s, "GetSummary", svc.GetSummary)
	rpc.Handle(s, "Home", svc.Home)
	rpc.Handle(s, "ResetData", svc.ResetData)
	return s.Path(), s.Handler()
}

// GetSummary computes the admin dashboard from the current snapshot.
func (s *DashboardService) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	summary, err := s.summarize(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&GetSummaryResponse{Summary: summary}), nil
}

// Home returns the view for the signed-in account's role.
func (s *DashboardService) Home(ctx context.Context, req *connect.Request[HomeRequest]) (*connect.Response[HomeResponse], error) {
	user := s.users.Current()
	if user == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, session.ErrNotAuthenticated)
	}
	slog.Info("Home request received", "user_id", user.ID, "role", user.Role)

	switch user.Role {
	case models.RoleAdmin:
		summary, err := s.summarize(ctx)
		if err != nil {
			return nil, err
		}
		return connect.NewResponse(&HomeResponse{Role: user.Role, Admin: &summary}), nil

	case models.RoleResident:
		home, err := s.residentHome(ctx, user)
		if err != nil {
			return nil, err
		}
		return connect.NewResponse(&HomeResponse{Role: user.Role, Resident: home}), nil

	default:
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("unknown role %q", user.Role))
	}
}

// ResetData overwrites fees and residents with the seed set.
func (s *DashboardService) ResetData(ctx context.Context, req *connect.Request[ResetDataRequest]) (*connect.Response[ResetDataResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	s.store.Lock()
	defer s.store.Unlock()
	if err := s.store.Reset(ctx); err != nil {
		return nil, storeError("ResetData", err)
	}
	slog.Warn("Records reset to seed data", "version", s.store.Version())
	return connect.NewResponse(&ResetDataResponse{Version: s.store.Version()}), nil
}

func (s *DashboardService) summarize(ctx context.Context) (calculator.Summary, error) {
	fees, err := s.store.Fees(ctx)
	if err != nil {
		return calculator.Summary{}, storeError("load fees", err)
	}
	residents, err := s.store.Residents(ctx)
	if err != nil {
		return calculator.Summary{}, storeError("load residents", err)
	}
	return calculator.Summarize(fees, residents, s.now()), nil
}

func (s *DashboardService) residentHome(ctx context.Context, user *models.UserAccount) (*ResidentHome, error) {
	fees, err := s.store.Fees(ctx)
	if err != nil {
		return nil, storeError("load fees", err)
	}
	residents, err := s.store.Residents(ctx)
	if err != nil {
		return nil, storeError("load residents", err)
	}

	home := &ResidentHome{ApartmentID: user.ApartmentID}
	if idx := indexOfEmail(residents, user.Email); idx >= 0 {
		r := residents[idx]
		home.Resident = &r
		if home.ApartmentID == "" {
			home.ApartmentID = r.ApartmentID
		}
	}

	home.Fees = calculator.FeesForApartment(fees, home.ApartmentID)
	for _, f := range home.Fees {
		if f.Status != models.StatusPaid {
			home.Outstanding += f.Total
		}
	}
	return home, nil
}
