package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/apartmanager/internal/auth"
	"github.com/mmynk/apartmanager/internal/models"
	"github.com/mmynk/apartmanager/internal/rpc"
	"github.com/mmynk/apartmanager/internal/session"
)

// AuthService implements the AuthService RPC interface over the session slot.
type AuthService struct {
	sessions   *session.Manager
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(sessions *session.Manager, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		sessions:   sessions,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// NewAuthServiceHandler builds the HTTP handler for svc.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	s := rpc.NewService(AuthServiceName, opts...)
	rpc.Handle(s, "Login", svc.Login)
	rpc.Handle(s, "Register", svc.Register)
	rpc.Handle(s, "Logout", svc.Logout)
	rpc.Handle(s, "GetCurrentUser", svc.GetCurrentUser)
	return s.Path(), s.Handler()
}

// PublicProcedures lists the procedures callable without a token.
func PublicProcedures() []string {
	return []string{
		rpc.Procedure(AuthServiceName, "Login"),
		rpc.Procedure(AuthServiceName, "Register"),
		rpc.Procedure(AuthServiceName, "GetCurrentUser"),
	}
}

// Register fabricates a resident account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	user, err := s.sessions.Register(ctx, req.Msg.Email, req.Msg.Name, req.Msg.ApartmentID)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		if errors.Is(err, auth.ErrMissingEmail) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return resp, nil
}

// Login checks the credential list and signs the account in.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	user, err := s.sessions.Login(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return resp, nil
}

// Logout clears the session slot. Tokens issued before stay valid JWTs but
// are rejected because their user no longer holds the slot.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	s.logger.Info("Logout request")
	if err := s.sessions.Logout(ctx); err != nil {
		s.logger.Error("Logout failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&LogoutResponse{}), nil
}

// GetCurrentUser reports the session state and the signed-in account.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return connect.NewResponse(&GetCurrentUserResponse{
		State: s.sessions.State().String(),
		User:  s.sessions.Current(),
	}), nil
}

func (s *AuthService) issue(user *models.UserAccount) (*connect.Response[AuthResponse], error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&AuthResponse{User: *user, Token: token}), nil
}
