package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quickdesk/relay/domain"
	"github.com/quickdesk/relay/service"
)

// Chat handles one user turn of the support conversation.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or missing JSON body"})
	}

	result, err := h.svc.Chat(c.Request().Context(), req.SessionID, req.UserQuery)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing or invalid 'user_query' field"})
		}
		log.Printf("ERROR: chat failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	status := http.StatusOK
	if result.Unavailable {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, result.Response)
}
