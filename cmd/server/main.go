package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zipparents/backend/internal/config"
	"github.com/zipparents/backend/internal/http/health"
	"github.com/zipparents/backend/internal/http/v1/routes"
	"github.com/zipparents/backend/internal/platform/auth"
	"github.com/zipparents/backend/internal/platform/firebase"
	applog "github.com/zipparents/backend/internal/platform/logging"
	appmiddleware "github.com/zipparents/backend/internal/platform/middleware"
	"github.com/zipparents/backend/internal/platform/respond"
	connsvc "github.com/zipparents/backend/internal/service/connections"
	discoverysvc "github.com/zipparents/backend/internal/service/discovery"
	eventsvc "github.com/zipparents/backend/internal/service/events"
	messagingsvc "github.com/zipparents/backend/internal/service/messaging"
	"github.com/zipparents/backend/internal/service/moderation"
	onboardingsvc "github.com/zipparents/backend/internal/service/onboarding"
	"github.com/zipparents/backend/internal/service/photos"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg := config.Load()

	ctx := context.Background()
	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    cfg.ProjectID,
		StorageBucket:                cfg.StorageBucket,
		GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
	})
	if err != nil {
		applog.LogFatal(ctx, "firebase initialization failed", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(context.Background(), "firebase close error", err)
		}
	}()

	users := usersvc.NewFirestoreStore(clients.Firestore)
	photoStore := photos.NewFirebaseStore(clients.Bucket, cfg.StorageBucket)
	onboardingCfg := onboardingsvc.Config{MinInterests: cfg.MinInterests}
	conns := connsvc.NewFirestoreStore(clients.Firestore)
	svcs := routes.Services{
		Users:         users,
		Photos:        photoStore,
		Submitter:     onboardingsvc.NewSubmitter(users, photoStore, onboardingCfg),
		OnboardingCfg: onboardingCfg,
		Discovery:     discoverysvc.NewService(users, nil),
		Events:        eventsvc.NewFirestoreStore(clients.Firestore),
		Messaging:     messagingsvc.NewFirestoreStore(clients.Firestore, conns),
		Connections:   conns,
		Reports:       moderation.NewFirestoreStore(clients.Firestore),
	}
	verifier := auth.NewFirebaseVerifier(clients.Auth)

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size. Photos are capped at 5 MiB; the
		// extra headroom covers base64 framing on the onboarding completion body.
		chimiddleware.RequestSize(8<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler)

	v1router := chi.NewRouter()
	router.Mount("/v1", v1router)

	humaCfg := huma.DefaultConfig("ZipParents API", Version)
	humaCfg.DocsPath = "/api-docs"
	humaCfg.Servers = []*huma.Server{{URL: "/v1"}}
	api := humachi.New(v1router, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, verifier, svcs)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}
