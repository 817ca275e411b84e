package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/internal/services"
	apperrors "github.com/hearthside/hearthside-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	service services.QuoteIntake
}

func NewQuoteHandler(service services.QuoteIntake) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// SubmitQuote handles POST /api/v1/submit-quote. Invalid input comes back
// as a field-error list so the wizard can show every problem at once; a
// storage failure is the only 500.
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var req models.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		attachError(c, err)
		errs := ParseValidationErrors(err)
		if len(errs) == 0 {
			errs = []string{"Invalid request payload"}
		}
		c.JSON(http.StatusBadRequest, models.SubmitQuoteResponse{Success: false, Errors: errs})
		return
	}

	quote, errs, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		attachError(c, err)
		c.JSON(http.StatusInternalServerError, models.SubmitQuoteResponse{
			Success: false,
			Errors:  []string{"Failed to save quote request. Please try again."},
		})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, models.SubmitQuoteResponse{Success: false, Errors: errs})
		return
	}

	c.JSON(http.StatusOK, models.SubmitQuoteResponse{
		Success: true,
		ID:      quote.ID.String(),
	})
}

// GetQuote handles GET /api/v1/quote/:id. The confirmation page re-fetches
// the stored record here instead of trusting client state.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid quote id", err)
		return
	}

	quote, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Quote request not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                quote.ID.String(),
		"trackingId":        quote.TrackingID(),
		"customer_name":     quote.CustomerName,
		"email":             quote.Email,
		"phone":             quote.Phone,
		"service_requested": quote.ServiceRequested,
		"property_city":     quote.PropertyCity,
		"property_state":    quote.PropertyState,
		"message":           quote.Message,
		"image_count":       len(quote.ImageURLs),
		"created_at":        quote.CreatedAt,
	})
}
