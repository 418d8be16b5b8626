package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/apartmanager/internal/calculator"
	"github.com/mmynk/apartmanager/internal/models"
	"github.com/mmynk/apartmanager/internal/records"
	"github.com/mmynk/apartmanager/internal/rpc"
	"github.com/mmynk/apartmanager/internal/session"
)

var errNoApartment = errors.New("apartment is required: set apartmentId or both building and room")

// ResidentService implements the resident registry and profile RPCs.
type ResidentService struct {
	store *records.Store
	users CurrentUser
	now   Clock
}

// NewResidentService creates a ResidentService. A nil clock uses time.Now.
func NewResidentService(store *records.Store, users CurrentUser, now Clock) *ResidentService {
	return &ResidentService{store: store, users: users, now: clockOrNow(now)}
}

// NewResidentServiceHandler builds the HTTP handler for svc.
func NewResidentServiceHandler(svc *ResidentService, opts ...connect.HandlerOption) (string, http.Handler) {
	s := rpc.NewService(ResidentServiceName, opts...)
	rpc.Handle(s, "ListResidents", svc.ListResidents)
	rpc.Handle(s, "SaveResident", svc.SaveResident)
	rpc.Handle(s, "DeleteResident", svc.DeleteResident)
	rpc.Handle(s, "GetProfile", svc.GetProfile)
	rpc.Handle(s, "UpsertProfile", svc.UpsertProfile)
	return s.Path(), s.Handler()
}

// ListResidents returns residents matching the search term, grouped by
// apartment, with the member count of every apartment.
func (s *ResidentService) ListResidents(ctx context.Context, req *connect.Request[ListResidentsRequest]) (*connect.Response[ListResidentsResponse], error) {
	slog.Info("ListResidents request received", "term", req.Msg.Term)

	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	residents, err := s.store.Residents(ctx)
	if err != nil {
		return nil, storeError("ListResidents", err)
	}

	counts := calculator.MemberCounts(residents)
	matched := calculator.SortResidents(calculator.FilterResidents(residents, req.Msg.Term))

	slog.Info("ListResidents successful", "count", len(matched), "apartments", len(counts))
	return connect.NewResponse(&ListResidentsResponse{Residents: matched, MemberCounts: counts}), nil
}

// SaveResident creates or edits a resident. An apartment can hold at most
// one owner; a conflicting save is rejected and nothing is written.
func (s *ResidentService) SaveResident(ctx context.Context, req *connect.Request[SaveResidentRequest]) (*connect.Response[ResidentResponse], error) {
	slog.Info("SaveResident request received", "resident_id", req.Msg.ID, "name", req.Msg.Name)

	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	in := req.Msg
	apartmentID := in.ApartmentID
	if in.Building != "" && in.Room != "" {
		apartmentID = calculator.ApartmentID(in.Building, in.Room)
	}
	if apartmentID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errNoApartment)
	}

	s.store.Lock()
	defer s.store.Unlock()

	residents, err := s.store.Residents(ctx)
	if err != nil {
		return nil, storeError("SaveResident", err)
	}

	idx := -1
	candidate := models.Resident{
		ID:          uuid.NewString(),
		MemberCount: 1,
		EntryDate:   s.now().Format(isoDate),
		Status:      models.ResidentActive,
		Role:        models.RoleMember,
	}
	if in.ID != "" {
		idx = indexOfResident(residents, in.ID)
		if idx < 0 {
			return nil, connect.NewError(connect.CodeNotFound, ErrNotFound)
		}
		candidate = residents[idx]
	}

	candidate.Name = in.Name
	candidate.Phone = in.Phone
	candidate.Email = in.Email
	candidate.ApartmentID = apartmentID
	if in.MemberCount > 0 {
		candidate.MemberCount = in.MemberCount
	}
	if in.EntryDate != "" {
		candidate.EntryDate = in.EntryDate
	}
	if in.Status != "" {
		candidate.Status = in.Status
	}
	if in.Role != "" {
		candidate.Role = in.Role
	}

	if owner, conflict := calculator.OwnerConflict(residents, candidate); conflict {
		slog.Warn("SaveResident rejected, apartment already has an owner",
			"apartment_id", apartmentID, "owner_id", owner.ID)
		return nil, connect.NewError(connect.CodeFailedPrecondition, ErrOwnerExists)
	}

	if idx >= 0 {
		residents[idx] = candidate
	} else {
		residents = append(residents, candidate)
	}
	if err := s.store.SaveResidents(ctx, residents); err != nil {
		return nil, storeError("SaveResident", err)
	}

	slog.Info("Resident saved", "resident_id", candidate.ID, "apartment_id", apartmentID, "created", idx < 0)
	return connect.NewResponse(&ResidentResponse{Resident: candidate}), nil
}

// DeleteResident removes a resident by id.
func (s *ResidentService) DeleteResident(ctx context.Context, req *connect.Request[DeleteResidentRequest]) (*connect.Response[DeleteResidentResponse], error) {
	slog.Info("DeleteResident request received", "resident_id", req.Msg.ID)

	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	residents, err := s.store.Residents(ctx)
	if err != nil {
		return nil, storeError("DeleteResident", err)
	}
	idx := indexOfResident(residents, req.Msg.ID)
	if idx < 0 {
		return nil, connect.NewError(connect.CodeNotFound, ErrNotFound)
	}
	residents = append(residents[:idx], residents[idx+1:]...)
	if err := s.store.SaveResidents(ctx, residents); err != nil {
		return nil, storeError("DeleteResident", err)
	}

	slog.Info("Resident deleted", "resident_id", req.Msg.ID)
	return connect.NewResponse(&DeleteResidentResponse{}), nil
}

// GetProfile returns the resident record whose email matches the signed-in
// account, or an unsaved draft built from the account.
func (s *ResidentService) GetProfile(ctx context.Context, req *connect.Request[GetProfileRequest]) (*connect.Response[GetProfileResponse], error) {
	user, err := s.profileOwner()
	if err != nil {
		return nil, err
	}
	slog.Info("GetProfile request received", "user_id", user.ID)

	residents, err := s.store.Residents(ctx)
	if err != nil {
		return nil, storeError("GetProfile", err)
	}
	if idx := indexOfEmail(residents, user.Email); idx >= 0 {
		return connect.NewResponse(&GetProfileResponse{Resident: residents[idx], Registered: true}), nil
	}

	draft := models.Resident{
		Name:        user.Name,
		Email:       user.Email,
		ApartmentID: user.ApartmentID,
		MemberCount: 1,
		Status:      models.ResidentActive,
	}
	return connect.NewResponse(&GetProfileResponse{Resident: draft}), nil
}

// UpsertProfile merges the submitted fields into the caller's resident
// record, or appends a new record with a fresh id.
func (s *ResidentService) UpsertProfile(ctx context.Context, req *connect.Request[UpsertProfileRequest]) (*connect.Response[ResidentResponse], error) {
	user, err := s.profileOwner()
	if err != nil {
		return nil, err
	}
	slog.Info("UpsertProfile request received", "user_id", user.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	in := req.Msg

	s.store.Lock()
	defer s.store.Unlock()

	residents, err := s.store.Residents(ctx)
	if err != nil {
		return nil, storeError("UpsertProfile", err)
	}

	idx := indexOfEmail(residents, user.Email)
	var r models.Resident
	if idx >= 0 {
		r = residents[idx]
	} else {
		r = models.Resident{
			ID:          uuid.NewString(),
			Email:       user.Email,
			ApartmentID: user.ApartmentID,
			MemberCount: 1,
			Status:      models.ResidentActive,
		}
	}

	r.Name = in.Name
	if in.Phone != "" {
		r.Phone = in.Phone
	}
	if in.ApartmentID != "" {
		r.ApartmentID = in.ApartmentID
	}
	if in.MemberCount > 0 {
		r.MemberCount = in.MemberCount
	}
	if in.EntryDate != "" {
		r.EntryDate = in.EntryDate
	}
	if in.Status != "" {
		r.Status = in.Status
	}

	if idx >= 0 {
		residents[idx] = r
	} else {
		residents = append(residents, r)
	}
	if err := s.store.SaveResidents(ctx, residents); err != nil {
		return nil, storeError("UpsertProfile", err)
	}

	slog.Info("Profile saved", "resident_id", r.ID, "created", idx < 0)
	return connect.NewResponse(&ResidentResponse{Resident: r}), nil
}

func (s *ResidentService) profileOwner() (*models.UserAccount, error) {
	user := s.users.Current()
	if user == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, session.ErrNotAuthenticated)
	}
	if user.IsAdmin() {
		return nil, connect.NewError(connect.CodePermissionDenied, ErrNoProfile)
	}
	return user, nil
}

func indexOfResident(residents []models.Resident, id string) int {
	for i, r := range residents {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func indexOfEmail(residents []models.Resident, email string) int {
	if email == "" {
		return -1
	}
	for i, r := range residents {
		if r.Email == email {
			return i
		}
	}
	return -1
}
