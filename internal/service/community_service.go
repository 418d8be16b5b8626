package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/apartmanager/internal/middleware"
	"github.com/mmynk/apartmanager/internal/models"
	"github.com/mmynk/apartmanager/internal/records"
	"github.com/mmynk/apartmanager/internal/rpc"
)

// CommunityService serves the notice board, activities, pool tickets and
// resident feedback.
type CommunityService struct {
	store *records.Store
	users CurrentUser
	now   Clock
}

// NewCommunityService creates a CommunityService. A nil clock uses time.Now.
func NewCommunityService(store *records.Store, users CurrentUser, now Clock) *CommunityService {
	return &CommunityService{store: store, users: users, now: clockOrNow(now)}
}

// NewCommunityServiceHandler builds the HTTP handler for svc.
func NewCommunityServiceHandler(svc *CommunityService, opts ...connect.HandlerOption) (string, http.Handler) {
	s := rpc.NewService(CommunityServiceName, opts...)
	rpc.Handle(s, "ListNotifications", svc.ListNotifications)
	rpc.Handle(s, "ListActivities", svc.ListActivities)
	rpc.Handle(s, "ListPoolTickets", svc.ListPoolTickets)
	rpc.Handle(s, "SubmitFeedback", svc.SubmitFeedback)
	rpc.Handle(s, "ListFeedback", svc.ListFeedback)
	return s.Path(), s.Handler()
}

func (s *CommunityService) ListNotifications(ctx context.Context, req *connect.Request[ListNotificationsRequest]) (*connect.Response[ListNotificationsResponse], error) {
	items, err := s.store.Notifications(ctx)
	if err != nil {
		return nil, storeError("ListNotifications", err)
	}
	return connect.NewResponse(&ListNotificationsResponse{Notifications: items}), nil
}

func (s *CommunityService) ListActivities(ctx context.Context, req *connect.Request[ListActivitiesRequest]) (*connect.Response[ListActivitiesResponse], error) {
	items, err := s.store.Activities(ctx)
	if err != nil {
		return nil, storeError("ListActivities", err)
	}
	return connect.NewResponse(&ListActivitiesResponse{Activities: items}), nil
}

func (s *CommunityService) ListPoolTickets(ctx context.Context, req *connect.Request[ListPoolTicketsRequest]) (*connect.Response[ListPoolTicketsResponse], error) {
	items, err := s.store.PoolTickets(ctx)
	if err != nil {
		return nil, storeError("ListPoolTickets", err)
	}
	return connect.NewResponse(&ListPoolTicketsResponse{Tickets: items}), nil
}

// SubmitFeedback records general feedback or a repair request from the
// signed-in account.
func (s *CommunityService) SubmitFeedback(ctx context.Context, req *connect.Request[SubmitFeedbackRequest]) (*connect.Response[SubmitFeedbackResponse], error) {
	slog.Info("SubmitFeedback request received", "kind", req.Msg.Kind, "user_id", middleware.GetUserID(ctx))

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	fb := models.Feedback{
		ID:            uuid.NewString(),
		Kind:          req.Msg.Kind,
		Subject:       req.Msg.Subject,
		Content:       req.Msg.Content,
		SubmittedBy:   middleware.GetEmail(ctx),
		PreferredDate: req.Msg.PreferredDate,
		CreatedAt:     s.now().Unix(),
	}
	if u := s.users.Current(); u != nil {
		fb.ApartmentID = u.ApartmentID
		if fb.SubmittedBy == "" {
			fb.SubmittedBy = u.Email
		}
	}

	s.store.Lock()
	defer s.store.Unlock()

	items, err := s.store.Feedback(ctx)
	if err != nil {
		return nil, storeError("SubmitFeedback", err)
	}
	items = append(items, fb)
	if err := s.store.SaveFeedback(ctx, items); err != nil {
		return nil, storeError("SubmitFeedback", err)
	}

	slog.Info("Feedback submitted", "feedback_id", fb.ID, "kind", fb.Kind)
	return connect.NewResponse(&SubmitFeedbackResponse{Feedback: fb}), nil
}

// ListFeedback returns every submission, oldest first.
func (s *CommunityService) ListFeedback(ctx context.Context, req *connect.Request[ListFeedbackRequest]) (*connect.Response[ListFeedbackResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	items, err := s.store.Feedback(ctx)
	if err != nil {
		return nil, storeError("ListFeedback", err)
	}
	return connect.NewResponse(&ListFeedbackResponse{Feedback: items}), nil
}
