package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/cache"
	"github.com/hearthside/hearthside-api/internal/email"
	"github.com/hearthside/hearthside-api/internal/mailtmpl"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/internal/sanitize"
	"github.com/hearthside/hearthside-api/internal/validation"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"github.com/hearthside/hearthside-api/pkg/metrics"
	"go.uber.org/zap"
)

// NotificationService sends the email pair for a persisted quote request:
// a confirmation to the customer and an alert with photo links to the
// office. Stored photo URLs point into a private bucket, so each is
// swapped for a presigned link before rendering.
type NotificationService struct {
	quotes        QuoteStore
	storage       ObjectStorage
	links         *cache.LinkCache
	sender        email.Sender
	businessEmail string
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	quotes QuoteStore,
	storage ObjectStorage,
	links *cache.LinkCache,
	sender email.Sender,
	businessEmail string,
) *NotificationService {
	return &NotificationService{
		quotes:        quotes,
		storage:       storage,
		links:         links,
		sender:        sender,
		businessEmail: businessEmail,
	}
}

// Dispatch sends both notification emails for a quote. The two sends run
// concurrently and fail independently; the result reports each outcome.
// Dispatch never returns an error because there is no caller that could
// act on one, the quote is already stored.
func (s *NotificationService) Dispatch(ctx context.Context, quote *models.QuoteRequest) models.DispatchResult {
	data := mailtmpl.QuoteEmailData{
		TrackingID: quote.TrackingID(),
		Name:       sanitize.ForEmail(quote.CustomerName),
		Email:      sanitize.ForEmail(quote.Email),
		Phone:      sanitize.ForEmail(validation.FormatPhone(quote.Phone)),
		Service:    sanitize.ForEmail(quote.ServiceRequested),
		City:       sanitize.ForEmail(quote.PropertyCity),
		State:      sanitize.ForEmail(quote.PropertyState),
		Message:    sanitize.Message(quote.Message),
		ImageURLs:  s.resolveImageLinks(ctx, quote.ImageURLs),
	}

	customerContent := mailtmpl.QuoteCustomer(data)
	businessContent := mailtmpl.QuoteBusiness(data)

	var result models.DispatchResult
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		result.CustomerEmail = s.send(ctx, "quote_customer", quote.Email, customerContent, data.TrackingID)
	}()
	go func() {
		defer wg.Done()
		result.BusinessEmail = s.send(ctx, "quote_business", s.businessEmail, businessContent, data.TrackingID)
	}()

	wg.Wait()

	status := "success"
	if !result.BusinessEmail || !result.CustomerEmail {
		status = "partial"
		if !result.BusinessEmail && !result.CustomerEmail {
			status = "error"
		}
	}
	metrics.NotificationDispatches.WithLabelValues("quote", status).Inc()

	logger.Info("Quote notification dispatched",
		zap.String("quote_id", quote.ID.String()),
		zap.String("tracking_id", data.TrackingID),
		zap.Bool("business_email", result.BusinessEmail),
		zap.Bool("customer_email", result.CustomerEmail),
	)

	return result
}

// DispatchByID loads a quote and dispatches its notifications. Used by
// the internal resend endpoint and the queue worker.
func (s *NotificationService) DispatchByID(ctx context.Context, quoteID uuid.UUID) (models.DispatchResult, error) {
	quote, err := s.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return models.DispatchResult{}, err
	}
	return s.Dispatch(ctx, quote), nil
}

func (s *NotificationService) send(ctx context.Context, template, to string, content models.EmailContent, trackingID string) bool {
	if err := s.sender.Send(ctx, to, content); err != nil {
		metrics.EmailsSent.WithLabelValues(template, "error").Inc()
		logger.Error("Failed to send quote notification email",
			zap.String("template", template),
			zap.String("tracking_id", trackingID),
			zap.Error(err),
		)
		return false
	}
	metrics.EmailsSent.WithLabelValues(template, "success").Inc()
	return true
}

// resolveImageLinks swaps bucket URLs for presigned ones. URLs outside the
// bucket pass through untouched, and a presign failure falls back to the
// stored URL so the email still lists every photo.
func (s *NotificationService) resolveImageLinks(ctx context.Context, urls []string) []string {
	if len(urls) == 0 {
		return nil
	}

	resolved := make([]string, 0, len(urls))
	for _, u := range urls {
		// Links are interpolated into HTML, so anything without a known
		// safe scheme is dropped rather than passed through.
		u = sanitize.URL(u)
		if u == "" {
			continue
		}

		key := s.storage.KeyFromURL(u)
		if key == "" {
			resolved = append(resolved, u)
			continue
		}

		if link, ok := s.links.Get(key); ok {
			resolved = append(resolved, link)
			continue
		}

		link, err := s.storage.PresignGet(ctx, key)
		if err != nil {
			logger.Warn("Failed to presign photo link, using stored URL",
				zap.String("key", key),
				zap.Error(err),
			)
			resolved = append(resolved, u)
			continue
		}

		s.links.Set(key, link)
		resolved = append(resolved, link)
	}

	return resolved
}

var _ NotificationDispatcher = (*NotificationService)(nil)
