package services

import (
	"context"
	"strings"

	"github.com/hearthside/hearthside-api/internal/email"
	"github.com/hearthside/hearthside-api/internal/mailtmpl"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/internal/sanitize"
	"github.com/hearthside/hearthside-api/internal/validation"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"github.com/hearthside/hearthside-api/pkg/metrics"
	"go.uber.org/zap"
)

// ContactService handles general-inquiry intake. Unlike quotes, contact
// notifications are sent inline: there are no attachments to resolve and
// the caller still gets a success response when delivery fails, because
// the message itself is already stored.
type ContactService struct {
	repo          ContactStore
	sender        email.Sender
	businessEmail string
}

// NewContactService creates a new contact service.
func NewContactService(repo ContactStore, sender email.Sender, businessEmail string) *ContactService {
	return &ContactService{
		repo:          repo,
		sender:        sender,
		businessEmail: businessEmail,
	}
}

// Submit validates, normalizes and persists a contact message, then sends
// the acknowledgement and business alert. A non-empty error slice means
// the input was rejected; a non-nil error means persistence failed.
func (s *ContactService) Submit(ctx context.Context, req *models.SubmitContactRequest) (*models.ContactMessage, []string, error) {
	fullName := strings.TrimSpace(req.FullName)
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	message := strings.TrimSpace(req.Message)

	if errs := validation.ContactErrors(fullName, emailAddr, phone, message); len(errs) > 0 {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		logger.Info("Contact message rejected",
			zap.Int("error_count", len(errs)),
			zap.Strings("errors", errs),
		)
		return nil, errs, nil
	}

	contact := &models.ContactMessage{
		FullName:  validation.Truncate(fullName, validation.MaxNameLen),
		Email:     validation.Truncate(emailAddr, validation.MaxEmailLen),
		Phone:     phone,
		Service:   validation.Truncate(strings.TrimSpace(req.Service), validation.MaxServiceLen),
		HeardFrom: validation.Truncate(strings.TrimSpace(req.HeardFrom), validation.MaxNameLen),
		Message:   validation.Truncate(message, validation.MaxContactMessageLen),
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		return nil, nil, err
	}

	metrics.ContactSubmissions.WithLabelValues("success").Inc()
	logger.Info("Contact message stored",
		zap.String("contact_id", contact.ID.String()),
		zap.String("tracking_id", contact.TrackingID()),
	)

	s.sendNotifications(ctx, contact)

	return contact, nil, nil
}

// sendNotifications delivers both contact emails. Each failure is logged
// and counted independently; neither propagates to the caller.
func (s *ContactService) sendNotifications(ctx context.Context, contact *models.ContactMessage) {
	data := mailtmpl.ContactEmailData{
		TrackingID: contact.TrackingID(),
		FullName:   sanitize.ForEmail(contact.FullName),
		Email:      sanitize.ForEmail(contact.Email),
		Phone:      sanitize.ForEmail(contact.Phone),
		Service:    sanitize.ForEmail(contact.Service),
		HeardFrom:  sanitize.ForEmail(contact.HeardFrom),
		Message:    sanitize.Message(contact.Message),
	}

	if err := s.sender.Send(ctx, contact.Email, mailtmpl.ContactCustomer(data)); err != nil {
		metrics.EmailsSent.WithLabelValues("contact_customer", "error").Inc()
		logger.Error("Failed to send contact acknowledgement",
			zap.String("tracking_id", data.TrackingID),
			zap.Error(err),
		)
	} else {
		metrics.EmailsSent.WithLabelValues("contact_customer", "success").Inc()
	}

	if err := s.sender.Send(ctx, s.businessEmail, mailtmpl.ContactBusiness(data)); err != nil {
		metrics.EmailsSent.WithLabelValues("contact_business", "error").Inc()
		logger.Error("Failed to send contact business alert",
			zap.String("tracking_id", data.TrackingID),
			zap.Error(err),
		)
	} else {
		metrics.EmailsSent.WithLabelValues("contact_business", "success").Inc()
	}
}

var _ ContactIntake = (*ContactService)(nil)
