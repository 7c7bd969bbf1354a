// Package api provides the HTTP handlers for the chat relay.
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/quickdesk/relay/service"
)

// Handler handles HTTP requests.
type Handler struct {
	svc       *service.Service
	dbPath    string
	staticDir string
}

// NewHandler creates a new handler. dbPath is the on-disk database location
// reported by the health check; staticDir holds the frontend assets.
func NewHandler(svc *service.Service, dbPath, staticDir string) *Handler {
	return &Handler{
		svc:       svc,
		dbPath:    dbPath,
		staticDir: staticDir,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", h.Chat)
	e.POST("/summarize", h.Summarize)
	e.GET("/health", h.Health)

	// Static frontend, not part of the core.
	e.File("/", filepath.Join(h.staticDir, "index.html"))
	e.Static("/static", h.staticDir)
}

// Health returns service status and whether the database file exists.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	_, err := os.Stat(h.dbPath)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"db":     err == nil,
	})
}
