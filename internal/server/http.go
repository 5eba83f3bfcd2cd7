// Package server builds the HTTP router and runs the server with graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	employeehandler "lead-crm/backend/internal/employee/handler"
	enquiryhandler "lead-crm/backend/internal/enquiry/handler"
	healthhandler "lead-crm/backend/internal/health/handler"
	"lead-crm/backend/internal/security"
	"lead-crm/backend/internal/server/middleware"
)

// Deps holds the services and infrastructure the HTTP handlers need.
type Deps struct {
	// Auth backs /register and /login.
	Auth employeehandler.AuthService
	// Enquiries backs /enquiry and the protected /enquiries routes.
	Enquiries enquiryhandler.EnquiryService
	// Tokens verifies bearer tokens for the access gate.
	Tokens *security.TokenProvider
	// DB is pinged by /healthz. May be nil.
	DB healthhandler.Pinger
	// Log is the structured logger for request logging and handler errors.
	Log *slog.Logger
}

// NewRouter builds the gin engine with all routes and middleware registered.
//
// Route → handler mapping:
//   - GET  /                    → internal/health/handler
//   - GET  /healthz             → internal/health/handler
//   - POST /register            → internal/employee/handler
//   - POST /login               → internal/employee/handler
//   - POST /enquiry             → internal/enquiry/handler (public)
//   - GET  /enquiries/public    → internal/enquiry/handler (bearer)
//   - POST /enquiries/claim/:id → internal/enquiry/handler (bearer)
//   - GET  /enquiries/my        → internal/enquiry/handler (bearer)
func NewRouter(deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Telemetry())

	health := healthhandler.NewHandler(deps.DB)
	r.GET("/", health.Root)
	r.GET("/healthz", health.Ready)

	employees := employeehandler.NewHandler(deps.Auth, log)
	r.POST("/register", employees.Register)
	r.POST("/login", employees.Login)

	enquiries := enquiryhandler.NewHandler(deps.Enquiries, log)
	r.POST("/enquiry", enquiries.Submit)

	protected := r.Group("/enquiries", middleware.Auth(deps.Tokens))
	protected.GET("/public", enquiries.ListPublic)
	protected.POST("/claim/:id", enquiries.Claim)
	protected.GET("/my", enquiries.ListMine)

	return r
}

// Run serves the router on addr until SIGINT/SIGTERM, then shuts down
// gracefully. Blocks until shutdown completes.
func Run(addr string, router *gin.Engine, log *slog.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("HTTP server stopped")
	return nil
}
