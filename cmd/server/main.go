package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/apartmanager/internal/advisor"
	"github.com/mmynk/apartmanager/internal/auth"
	"github.com/mmynk/apartmanager/internal/config"
	"github.com/mmynk/apartmanager/internal/metrics"
	"github.com/mmynk/apartmanager/internal/middleware"
	"github.com/mmynk/apartmanager/internal/models"
	"github.com/mmynk/apartmanager/internal/records"
	"github.com/mmynk/apartmanager/internal/rpc"
	"github.com/mmynk/apartmanager/internal/service"
	"github.com/mmynk/apartmanager/internal/session"
	"github.com/mmynk/apartmanager/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("APT_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	kv, err := openKV(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer kv.Close()
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver)

	store := records.New(kv,
		records.WithVersion(cfg.Seed.Version),
		records.WithRecoverMalformed(cfg.Storage.RecoverMalformed),
		records.WithMetrics(m),
	)

	sessions := session.NewManager(store, auth.NewCredentialAuthenticator(credentials(cfg.Auth.Admins), nil))
	if err := sessions.Restore(ctx); err != nil {
		return err
	}
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)

	var gen advisor.Generator
	if cfg.AdvisorEnabled() {
		gen = advisor.NewHTTPGenerator(cfg.Advisor.Endpoint, cfg.Advisor.Model, cfg.Advisor.APIKey, cfg.Advisor.Timeout)
		slog.Info("Advisor enabled", "model", cfg.Advisor.Model)
	} else {
		slog.Warn("Advisor API key not set, advisory text will use fallbacks")
	}

	opts := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(jwtManager, sessions, service.PublicProcedures()...),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(service.NewAuthServiceHandler(service.NewAuthService(sessions, jwtManager, slog.Default()), opts))
	mux.Handle(service.NewFeeServiceHandler(service.NewFeeService(store, sessions, nil), opts))
	mux.Handle(service.NewResidentServiceHandler(service.NewResidentService(store, sessions, nil), opts))
	mux.Handle(service.NewDashboardServiceHandler(service.NewDashboardService(store, sessions, nil), opts))
	mux.Handle(service.NewCommunityServiceHandler(service.NewCommunityService(store, sessions, nil), opts))
	mux.Handle(service.NewAdvisorServiceHandler(service.NewAdvisorService(store, advisor.New(gen)), opts))

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.HandleFunc("/", staticHandler(staticDir))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func credentials(admins []config.AdminCredential) []auth.Credential {
	creds := make([]auth.Credential, 0, len(admins))
	for i, a := range admins {
		id := a.ID
		if id == "" {
			id = "admin"
			if i > 0 {
				id = fmt.Sprintf("admin-%d", i+1)
			}
		}
		creds = append(creds, auth.Credential{
			ID:       id,
			Email:    a.Email,
			Name:     a.Name,
			Password: a.Password,
			Role:     models.RoleAdmin,
		})
	}
	return creds
}

// staticHandler serves the view layer and falls back to index.html for
// unknown paths.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rpc.IsProcedurePath(r.URL.Path, service.PackagePrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
