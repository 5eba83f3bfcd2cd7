// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev employee (dev@example.com) already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"lead-crm/backend/internal/config"
	"lead-crm/backend/internal/db"
	employeedomain "lead-crm/backend/internal/employee/domain"
	employeerepo "lead-crm/backend/internal/employee/repository"
	enquirydomain "lead-crm/backend/internal/enquiry/domain"
	enquiryrepo "lead-crm/backend/internal/enquiry/repository"
	"lead-crm/backend/internal/security"
)

const (
	devEmployeeEmail = "dev@example.com"
	devPassword      = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	employees := employeerepo.NewPostgresRepository(conn)
	enquiries := enquiryrepo.NewPostgresRepository(conn)

	existing, err := employees.GetByEmail(ctx, devEmployeeEmail)
	if err != nil {
		log.Fatalf("seed: lookup dev employee: %v", err)
	}
	if existing != nil {
		log.Printf("seed: dev employee %s already exists, skipping", devEmployeeEmail)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("seed: hash password: %v", err)
	}

	now := time.Now().UTC()
	emp := &employeedomain.Employee{
		ID:           uuid.NewString(),
		Name:         "Dev Agent",
		Email:        devEmployeeEmail,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if err := employees.Create(ctx, emp); err != nil {
		log.Fatalf("seed: create dev employee: %v", err)
	}

	samples := []*enquirydomain.Enquiry{
		{ID: uuid.NewString(), Name: "Asha Verma", Email: "asha@example.com", CourseInterest: "Go Backend Bootcamp", CreatedAt: now},
		{ID: uuid.NewString(), Name: "Tom Baker", Email: "tom@example.com", CourseInterest: "Data Engineering", CreatedAt: now.Add(time.Second)},
		{ID: uuid.NewString(), Name: "Lin Wei", Email: "lin@example.com", CourseInterest: "Cloud Fundamentals", CreatedAt: now.Add(2 * time.Second)},
	}
	for _, e := range samples {
		if err := enquiries.Create(ctx, e); err != nil {
			log.Fatalf("seed: create enquiry %s: %v", e.Email, err)
		}
	}

	log.Printf("seed: created employee %s (password %q) and %d enquiries", devEmployeeEmail, devPassword, len(samples))
}
