package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/apartmanager/internal/advisor"
	"github.com/mmynk/apartmanager/internal/auth"
	"github.com/mmynk/apartmanager/internal/middleware"
	"github.com/mmynk/apartmanager/internal/records"
	"github.com/mmynk/apartmanager/internal/rpc"
	"github.com/mmynk/apartmanager/internal/session"
	"github.com/mmynk/apartmanager/internal/storage/sqlite"
)

// testNow falls in the December 2025 billing period of the seed data.
var testNow = time.Date(2025, time.December, 15, 9, 0, 0, 0, time.UTC)

type fakeGenerator struct {
	mu     sync.Mutex
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompt = prompt
	return f.text, f.err
}

func (f *fakeGenerator) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompt
}

type testEnv struct {
	url      string
	store    *records.Store
	sessions *session.Manager
	gen      *fakeGenerator
}

// setupTestServer serves every service over a fresh sqlite file, behind the
// same interceptors the server uses.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	kv, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	clock := func() time.Time { return testNow }
	store := records.New(kv)
	sessions := session.NewManager(store, auth.NewCredentialAuthenticator(auth.DefaultCredentials(), clock))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	gen := &fakeGenerator{text: "generated"}

	opts := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(jwtManager, sessions, PublicProcedures()...),
	)

	mux := http.NewServeMux()
	mux.Handle(NewFeeServiceHandler(NewFeeService(store, sessions, clock), opts))
	mux.Handle(NewResidentServiceHandler(NewResidentService(store, sessions, clock), opts))
	mux.Handle(NewDashboardServiceHandler(NewDashboardService(store, sessions, clock), opts))
	mux.Handle(NewAuthServiceHandler(NewAuthService(sessions, jwtManager, nil), opts))
	mux.Handle(NewCommunityServiceHandler(NewCommunityService(store, sessions, clock), opts))
	mux.Handle(NewAdvisorServiceHandler(NewAdvisorService(store, advisor.New(gen)), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		kv.Close()
	})

	return &testEnv{url: server.URL, store: store, sessions: sessions, gen: gen}
}

// call invokes one procedure with an optional bearer token.
func call[Req, Res any](t *testing.T, env *testEnv, service, method, token string, msg *Req) (*Res, error) {
	t.Helper()
	client := rpc.NewClient[Req, Res](http.DefaultClient, env.url, rpc.Procedure(service, method))
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	resp, err := client.CallUnary(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (e *testEnv) loginAdmin(t *testing.T) string {
	t.Helper()
	resp, err := call[LoginRequest, AuthResponse](t, e, AuthServiceName, "Login", "",
		&LoginRequest{Email: "admin@apart.vn", Password: "123456"})
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	return resp.Token
}

func (e *testEnv) registerResident(t *testing.T, email, apartmentID string) string {
	t.Helper()
	resp, err := call[RegisterRequest, AuthResponse](t, e, AuthServiceName, "Register", "",
		&RegisterRequest{Email: email, ApartmentID: apartmentID})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return resp.Token
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
