// Package handler exposes liveness and readiness endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable (e.g. *sql.DB).
type Pinger interface {
	Ping() error
}

// Handler serves the root liveness route and the readiness check.
type Handler struct {
	db Pinger
}

// NewHandler returns a health handler. db may be nil, in which case readiness
// skips the store ping.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Root handles GET /.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "CRM REST API is running")
}

// Ready handles GET /healthz: 200 when the store responds, 503 otherwise.
func (h *Handler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
