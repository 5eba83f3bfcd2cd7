// Package handler exposes enquiry intake, listing, and claiming over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lead-crm/backend/internal/enquiry/domain"
	"lead-crm/backend/internal/enquiry/service"
	"lead-crm/backend/internal/server/middleware"
)

// EnquiryService is the subset of the enquiry service used by the handler.
type EnquiryService interface {
	Submit(ctx context.Context, name, email, courseInterest string) error
	ListUnclaimed(ctx context.Context) ([]*domain.Enquiry, error)
	ListClaimedBy(ctx context.Context, email string) ([]*domain.Enquiry, error)
	Claim(ctx context.Context, id, callerEmail string) error
}

// Handler handles enquiry submission, listing, and claiming requests.
type Handler struct {
	svc EnquiryService
	log *slog.Logger
}

// NewHandler returns a Handler backed by the given enquiry service.
func NewHandler(svc EnquiryService, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type submitRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	CourseInterest string `json:"courseInterest"`
}

type enquiryResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CourseInterest string    `json:"courseInterest"`
	ClaimedBy      *string   `json:"claimedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Submit handles POST /enquiry (public).
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required"})
		return
	}

	err := h.svc.Submit(c.Request.Context(), req.Name, req.Email, req.CourseInterest)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Enquiry submitted successfully"})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required"})
	default:
		h.log.Error("enquiry submit failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error submitting enquiry"})
	}
}

// ListPublic handles GET /enquiries/public (protected): unclaimed enquiries,
// newest first.
func (h *Handler) ListPublic(c *gin.Context) {
	list, err := h.svc.ListUnclaimed(c.Request.Context())
	if err != nil {
		h.log.Error("list unclaimed enquiries failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching public enquiries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enquiries": toResponses(list)})
}

// ListMine handles GET /enquiries/my (protected): enquiries claimed by the
// caller, newest first.
func (h *Handler) ListMine(c *gin.Context) {
	email, ok := middleware.GetEmployeeEmail(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}
	list, err := h.svc.ListClaimedBy(c.Request.Context(), email)
	if err != nil {
		h.log.Error("list claimed enquiries failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching claimed enquiries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enquiries": toResponses(list)})
}

// Claim handles POST /enquiries/claim/:id (protected).
func (h *Handler) Claim(c *gin.Context) {
	email, ok := middleware.GetEmployeeEmail(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	err := h.svc.Claim(c.Request.Context(), c.Param("id"), email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Enquiry claimed successfully"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Enquiry not found"})
	case errors.Is(err, service.ErrAlreadyClaimed):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Enquiry already claimed"})
	default:
		h.log.Error("enquiry claim failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error claiming enquiry"})
	}
}

func toResponses(list []*domain.Enquiry) []enquiryResponse {
	out := make([]enquiryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, enquiryResponse{
			ID:             e.ID,
			Name:           e.Name,
			Email:          e.Email,
			CourseInterest: e.CourseInterest,
			ClaimedBy:      e.ClaimedBy,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}
