package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"lead-crm/backend/internal/config"
	"lead-crm/backend/internal/db"
	employeerepo "lead-crm/backend/internal/employee/repository"
	employeeservice "lead-crm/backend/internal/employee/service"
	enquiryrepo "lead-crm/backend/internal/enquiry/repository"
	enquiryservice "lead-crm/backend/internal/enquiry/service"
	"lead-crm/backend/internal/security"
	"lead-crm/backend/internal/server"
	"lead-crm/backend/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	providers, err := otel.NewProviders(context.Background(), cfg.OTLPEndpoint, "lead-crm-backend", false)
	if err != nil {
		log.Error("telemetry", "error", err)
		os.Exit(1)
	}
	providers.SetGlobal()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			log.Error("telemetry shutdown", "error", err)
		}
	}()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("db", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.SessionTTL())

	auth := employeeservice.NewAuthService(employeerepo.NewPostgresRepository(conn), hasher, tokens)
	enquiries := enquiryservice.NewService(enquiryrepo.NewPostgresRepository(conn))

	router := server.NewRouter(server.Deps{
		Auth:      auth,
		Enquiries: enquiries,
		Tokens:    tokens,
		DB:        conn,
		Log:       log,
	})

	if err := server.Run(cfg.Addr, router, log); err != nil {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}
