package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubmitQuoteRequest represents a quote request submission from the wizard.
// Length bounds mirror internal/validation; the binding tags give the
// framework-level backstop, the service recomputes every rule itself.
type SubmitQuoteRequest struct {
	CustomerName     string   `json:"customer_name" binding:"required,max=100"`
	Email            string   `json:"email" binding:"required,email,max=255"`
	Phone            string   `json:"phone"`
	ServiceRequested string   `json:"service_requested" binding:"required,max=100"`
	PropertyCity     string   `json:"property_city" binding:"max=100"`
	PropertyState    string   `json:"property_state" binding:"max=50"`
	Message          string   `json:"message" binding:"max=2000"`
	ImageURLs        []string `json:"image_urls"`
}

// SubmitQuoteResponse is returned after a quote submission attempt.
type SubmitQuoteResponse struct {
	Success bool     `json:"success"`
	ID      string   `json:"id,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// QuoteRequest is a persisted quote request record. Immutable from this
// workflow's perspective once created; status transitions belong to the
// office dashboard.
type QuoteRequest struct {
	ID               uuid.UUID
	CustomerName     string
	Email            string
	Phone            string
	ServiceRequested string
	PropertyCity     string
	PropertyState    string
	Message          string
	ImageURLs        []string
	CreatedAt        time.Time
}

// TrackingID derives the human-presentable reference for a record:
// the creation year plus a fragment of the store-assigned id,
// e.g. "QR-2026-A1B2". Computed, never stored.
func TrackingID(prefix string, id uuid.UUID, createdAt time.Time) string {
	fragment := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:4]
	return fmt.Sprintf("%s-%d-%s", prefix, createdAt.Year(), fragment)
}

// TrackingID returns the tracking reference for a quote request.
func (q *QuoteRequest) TrackingID() string {
	return TrackingID("QR", q.ID, q.CreatedAt)
}
