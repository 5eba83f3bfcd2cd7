// Package handler exposes employee registration and login over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-crm/backend/internal/employee/service"
)

// AuthService is the subset of the employee auth service used by the handler.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// Handler handles employee registration and login requests.
type Handler struct {
	auth AuthService
	log  *slog.Logger
}

// NewHandler returns a Handler backed by the given auth service.
func NewHandler(auth AuthService, log *slog.Logger) *Handler {
	return &Handler{auth: auth, log: log}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required"})
		return
	}

	err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Employee registered successfully"})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required"})
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
	default:
		h.log.Error("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering employee"})
	}
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": res.Token})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
	default:
		h.log.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
	}
}
