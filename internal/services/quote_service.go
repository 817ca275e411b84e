package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/dispatch"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/internal/validation"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"github.com/hearthside/hearthside-api/pkg/metrics"
	"go.uber.org/zap"
)

// NotificationEnqueuer hands a persisted quote off for asynchronous
// notification delivery.
type NotificationEnqueuer interface {
	Enqueue(job dispatch.Job) bool
}

// QuoteService handles quote request intake.
type QuoteService struct {
	repo  QuoteStore
	queue NotificationEnqueuer
}

// NewQuoteService creates a new quote service.
func NewQuoteService(repo QuoteStore, queue NotificationEnqueuer) *QuoteService {
	return &QuoteService{repo: repo, queue: queue}
}

// Submit validates, normalizes and persists a quote request, then enqueues
// its notifications. A non-empty error slice means the input was rejected;
// a non-nil error means persistence failed. Notification delivery never
// affects the outcome.
func (s *QuoteService) Submit(ctx context.Context, req *models.SubmitQuoteRequest) (*models.QuoteRequest, []string, error) {
	name := strings.TrimSpace(req.CustomerName)
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	phone := validation.NormalizePhone(req.Phone)
	service := strings.TrimSpace(req.ServiceRequested)
	city := strings.TrimSpace(req.PropertyCity)
	state := strings.TrimSpace(req.PropertyState)
	message := strings.TrimSpace(req.Message)

	if errs := validation.QuoteErrors(name, emailAddr, phone, service, city, state, message); len(errs) > 0 {
		metrics.QuoteSubmissions.WithLabelValues("invalid").Inc()
		logger.Info("Quote request rejected",
			zap.Int("error_count", len(errs)),
			zap.Strings("errors", errs),
		)
		return nil, errs, nil
	}

	quote := &models.QuoteRequest{
		CustomerName:     validation.Truncate(name, validation.MaxNameLen),
		Email:            validation.Truncate(emailAddr, validation.MaxEmailLen),
		Phone:            phone,
		ServiceRequested: validation.Truncate(service, validation.MaxServiceLen),
		PropertyCity:     validation.Truncate(city, validation.MaxCityLen),
		PropertyState:    validation.Truncate(state, validation.MaxStateLen),
		Message:          validation.Truncate(message, validation.MaxMessageLen),
		ImageURLs:        req.ImageURLs,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		metrics.QuoteSubmissions.WithLabelValues("error").Inc()
		return nil, nil, err
	}

	metrics.QuoteSubmissions.WithLabelValues("success").Inc()
	logger.Info("Quote request stored",
		zap.String("quote_id", quote.ID.String()),
		zap.String("tracking_id", quote.TrackingID()),
		zap.String("service", quote.ServiceRequested),
		zap.Int("image_count", len(quote.ImageURLs)),
	)

	// The record is durable at this point. Notifications go out on the
	// dispatch queue so a slow or failing relay cannot delay the response.
	s.queue.Enqueue(dispatch.Job{
		QuoteID:   quote.ID,
		ImageURLs: quote.ImageURLs,
	})

	return quote, nil, nil
}

// GetByID fetches a persisted quote request for the confirmation page.
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return s.repo.GetByID(ctx, id)
}

var _ QuoteIntake = (*QuoteService)(nil)
