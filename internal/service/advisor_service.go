package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/apartmanager/internal/advisor"
	"github.com/mmynk/apartmanager/internal/records"
	"github.com/mmynk/apartmanager/internal/rpc"
)

// AdvisorService exposes generated advisory text. Generation failures come
// back as the advisor's apology text, never as RPC errors.
type AdvisorService struct {
	store   *records.Store
	advisor *advisor.Advisor
}

// NewAdvisorService creates an AdvisorService.
func NewAdvisorService(store *records.Store, adv *advisor.Advisor) *AdvisorService {
	return &AdvisorService{store: store, advisor: adv}
}

// NewAdvisorServiceHandler builds the HTTP handler for svc.
func NewAdvisorServiceHandler(svc *AdvisorService, opts ...connect.HandlerOption) (string, http.Handler) {
	s := rpc.NewService(AdvisorServiceName, opts...)
	rpc.Handle(s, "AnalyzeFees", svc.AnalyzeFees)
	rpc.Handle(s, "DraftReminder", svc.DraftReminder)
	return s.Path(), s.Handler()
}

// AnalyzeFees sends the whole fee ledger for review.
func (s *AdvisorService) AnalyzeFees(ctx context.Context, req *connect.Request[AnalyzeFeesRequest]) (*connect.Response[AdvisorResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	fees, err := s.store.Fees(ctx)
	if err != nil {
		return nil, storeError("AnalyzeFees", err)
	}
	slog.Info("AnalyzeFees request received", "fees", len(fees))
	return connect.NewResponse(&AdvisorResponse{Text: s.advisor.AnalyzeFees(ctx, fees)}), nil
}

// DraftReminder drafts a payment reminder for one resident.
func (s *AdvisorService) DraftReminder(ctx context.Context, req *connect.Request[DraftReminderRequest]) (*connect.Response[AdvisorResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	slog.Info("DraftReminder request received", "apartment_id", req.Msg.ApartmentID)
	text := s.advisor.DraftReminder(ctx, req.Msg.ResidentName, req.Msg.Amount, req.Msg.ApartmentID)
	return connect.NewResponse(&AdvisorResponse{Text: text}), nil
}
