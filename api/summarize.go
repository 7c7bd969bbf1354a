package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quickdesk/relay/domain"
)

// Summarize returns a summary of a session transcript.
// POST /summarize
func (h *Handler) Summarize(c echo.Context) error {
	var req domain.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or missing JSON body"})
	}
	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "session_id is required for summarization"})
	}

	summary, err := h.svc.Summarize(c.Request().Context(), req.SessionID)
	if err != nil {
		log.Printf("ERROR: summarize failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, domain.SummarizeResponse{Summary: summary})
}
