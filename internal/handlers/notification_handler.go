package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/internal/services"
	apperrors "github.com/hearthside/hearthside-api/pkg/errors"
)

// NotificationHandler exposes the internal resend endpoint. The office
// dashboard calls it when a quote's notifications need to go out again;
// it sits behind the shared-token middleware, never the public site.
type NotificationHandler struct {
	dispatcher services.NotificationDispatcher
}

func NewNotificationHandler(dispatcher services.NotificationDispatcher) *NotificationHandler {
	return &NotificationHandler{dispatcher: dispatcher}
}

// SendNotification handles POST /api/internal/send-notification.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req models.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	quoteID, err := uuid.Parse(req.QuoteID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid quote id", err)
		return
	}

	result, err := h.dispatcher.DispatchByID(c.Request.Context(), quoteID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Quote request not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	resp := models.SendNotificationResponse{
		Success:       result.BusinessEmail && result.CustomerEmail,
		SMS:           false,
		BusinessEmail: result.BusinessEmail,
		CustomerEmail: result.CustomerEmail,
	}
	if !resp.Success {
		resp.Error = "one or more emails failed to send"
	}

	c.JSON(http.StatusOK, resp)
}
