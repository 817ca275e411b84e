package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/internal/services"
)

type ContactHandler struct {
	service services.ContactIntake
}

func NewContactHandler(service services.ContactIntake) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContact handles POST /api/v1/submit-contact.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		attachError(c, err)
		msg := "Invalid request payload"
		if errs := ParseValidationErrors(err); len(errs) > 0 {
			msg = strings.Join(errs, "; ")
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	contact, errs, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to save message. Please try again.", err)
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, "; ")})
		return
	}

	c.JSON(http.StatusOK, models.SubmitContactResponse{
		Success:    true,
		TrackingID: contact.TrackingID(),
		Message:    "Thanks for reaching out. We'll get back to you within one business day.",
	})
}
