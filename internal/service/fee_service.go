package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/apartmanager/internal/calculator"
	"github.com/mmynk/apartmanager/internal/middleware"
	"github.com/mmynk/apartmanager/internal/models"
	"github.com/mmynk/apartmanager/internal/records"
	"github.com/mmynk/apartmanager/internal/rpc"
)

// FeeService implements the fee ledger RPCs. Every write reads the whole
// collection, edits it in memory and writes it back.
type FeeService struct {
	store *records.Store
	users CurrentUser
	now   Clock
}

// NewFeeService creates a FeeService. A nil clock uses time.Now.
func NewFeeService(store *records.Store, users CurrentUser, now Clock) *FeeService {
	return &FeeService{store: store, users: users, now: clockOrNow(now)}
}

// NewFeeServiceHandler builds the HTTP handler for svc.
func NewFeeServiceHandler(svc *FeeService, opts ...connect.HandlerOption) (string, http.Handler) {
	s := rpc.NewService(FeeServiceName, opts...)
	rpc.Handle(s, "ListFees", svc.ListFees)
	rpc.Handle(s, "CreateFee", svc.CreateFee)
	rpc.Handle(s, "UpdateFee", svc.UpdateFee)
	rpc.Handle(s, "SetFeeStatus", svc.SetFeeStatus)
	rpc.Handle(s, "DeleteFee", svc.DeleteFee)
	return s.Path(), s.Handler()
}

// ListFees returns fees matching the search term. Residents only see their
// own apartment.
func (s *FeeService) ListFees(ctx context.Context, req *connect.Request[ListFeesRequest]) (*connect.Response[ListFeesResponse], error) {
	slog.Info("ListFees request received", "term", req.Msg.Term)

	fees, err := s.store.Fees(ctx)
	if err != nil {
		return nil, storeError("ListFees", err)
	}

	if middleware.GetRole(ctx) != models.RoleAdmin {
		apartmentID := ""
		if u := s.users.Current(); u != nil {
			apartmentID = u.ApartmentID
		}
		fees = calculator.FeesForApartment(fees, apartmentID)
	}
	fees = calculator.FilterFees(fees, req.Msg.Term)

	slog.Info("ListFees successful", "count", len(fees))
	return connect.NewResponse(&ListFeesResponse{Fees: fees}), nil
}

// CreateFee adds a fee at the front of the ledger with a new id and today's
// due date.
func (s *FeeService) CreateFee(ctx context.Context, req *connect.Request[CreateFeeRequest]) (*connect.Response[FeeResponse], error) {
	slog.Info("CreateFee request received", "apartment_id", req.Msg.ApartmentID)

	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	now := s.now()
	period := calculator.Period(now)
	fee := applyFeeInput(models.FeeItem{
		ID:      uuid.NewString(),
		Month:   period.Month,
		Year:    period.Year,
		Status:  models.StatusPending,
		DueDate: now.Format(isoDate),
	}, req.Msg.FeeInput)

	s.store.Lock()
	defer s.store.Unlock()

	fees, err := s.store.Fees(ctx)
	if err != nil {
		return nil, storeError("CreateFee", err)
	}
	fees = append([]models.FeeItem{fee}, fees...)
	if err := s.store.SaveFees(ctx, fees); err != nil {
		return nil, storeError("CreateFee", err)
	}

	slog.Info("Fee created", "fee_id", fee.ID, "total", fee.Total)
	return connect.NewResponse(&FeeResponse{Fee: fee}), nil
}

// UpdateFee replaces the editable fields of a fee and recomputes its total.
// Empty month, year, status and due date keep their stored values.
func (s *FeeService) UpdateFee(ctx context.Context, req *connect.Request[UpdateFeeRequest]) (*connect.Response[FeeResponse], error) {
	slog.Info("UpdateFee request received", "fee_id", req.Msg.ID)

	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var updated models.FeeItem
	err := s.mutate(ctx, req.Msg.ID, func(f *models.FeeItem) {
		*f = applyFeeInput(*f, req.Msg.FeeInput)
		if req.Msg.DueDate != "" {
			f.DueDate = req.Msg.DueDate
		}
		updated = *f
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Fee updated", "fee_id", updated.ID, "total", updated.Total)
	return connect.NewResponse(&FeeResponse{Fee: updated}), nil
}

// SetFeeStatus changes only the payment status of a fee.
func (s *FeeService) SetFeeStatus(ctx context.Context, req *connect.Request[SetFeeStatusRequest]) (*connect.Response[FeeResponse], error) {
	slog.Info("SetFeeStatus request received", "fee_id", req.Msg.ID, "status", req.Msg.Status)

	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	var updated models.FeeItem
	err := s.mutate(ctx, req.Msg.ID, func(f *models.FeeItem) {
		f.Status = req.Msg.Status
		updated = *f
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&FeeResponse{Fee: updated}), nil
}

// DeleteFee removes a fee by id.
func (s *FeeService) DeleteFee(ctx context.Context, req *connect.Request[DeleteFeeRequest]) (*connect.Response[DeleteFeeResponse], error) {
	slog.Info("DeleteFee request received", "fee_id", req.Msg.ID)

	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	fees, err := s.store.Fees(ctx)
	if err != nil {
		return nil, storeError("DeleteFee", err)
	}
	kept := make([]models.FeeItem, 0, len(fees))
	for _, f := range fees {
		if f.ID != req.Msg.ID {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(fees) {
		return nil, connect.NewError(connect.CodeNotFound, ErrNotFound)
	}
	if err := s.store.SaveFees(ctx, kept); err != nil {
		return nil, storeError("DeleteFee", err)
	}

	slog.Info("Fee deleted", "fee_id", req.Msg.ID)
	return connect.NewResponse(&DeleteFeeResponse{}), nil
}

// mutate applies edit to the fee with id and writes the ledger back.
func (s *FeeService) mutate(ctx context.Context, id string, edit func(*models.FeeItem)) error {
	s.store.Lock()
	defer s.store.Unlock()

	fees, err := s.store.Fees(ctx)
	if err != nil {
		return storeError("load fees", err)
	}
	for i := range fees {
		if fees[i].ID != id {
			continue
		}
		edit(&fees[i])
		if err := s.store.SaveFees(ctx, fees); err != nil {
			return storeError("save fees", err)
		}
		return nil
	}
	return connect.NewError(connect.CodeNotFound, ErrNotFound)
}

func applyFeeInput(f models.FeeItem, in FeeInput) models.FeeItem {
	f.ApartmentID = in.ApartmentID
	f.ResidentName = in.ResidentName
	if in.Month != "" {
		f.Month = in.Month
	}
	if in.Year != 0 {
		f.Year = in.Year
	}
	if in.Status != "" {
		f.Status = in.Status
	}
	f.ManagementFee = in.ManagementFee
	f.Electricity = in.Electricity
	f.Water = in.Water
	f.Parking = in.Parking
	calculator.RecomputeTotal(&f)
	return f
}
