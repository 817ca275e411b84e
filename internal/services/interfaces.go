// Package services holds the intake business logic between the HTTP
// handlers and the stores. Services normalize and re-validate client
// input, persist it, and arrange notification delivery.
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/models"
)

// QuoteStore persists quote requests.
type QuoteStore interface {
	Create(ctx context.Context, q *models.QuoteRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
}

// ContactStore persists contact messages.
type ContactStore interface {
	Create(ctx context.Context, m *models.ContactMessage) error
}

// ObjectStorage resolves stored photo URLs into time-limited links.
type ObjectStorage interface {
	KeyFromURL(rawURL string) string
	PresignGet(ctx context.Context, key string) (string, error)
}

// QuoteIntake is the quote submission workflow as seen by the handlers.
type QuoteIntake interface {
	Submit(ctx context.Context, req *models.SubmitQuoteRequest) (*models.QuoteRequest, []string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
}

// ContactIntake is the contact submission workflow as seen by the handlers.
type ContactIntake interface {
	Submit(ctx context.Context, req *models.SubmitContactRequest) (*models.ContactMessage, []string, error)
}

// NotificationDispatcher sends the email pair for a persisted quote.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, quote *models.QuoteRequest) models.DispatchResult
	DispatchByID(ctx context.Context, quoteID uuid.UUID) (models.DispatchResult, error)
}
