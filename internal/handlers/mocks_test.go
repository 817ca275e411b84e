package handlers_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockQuoteIntake is a mock implementation of services.QuoteIntake
type MockQuoteIntake struct {
	mock.Mock
}

func (m *MockQuoteIntake) Submit(ctx context.Context, req *models.SubmitQuoteRequest) (*models.QuoteRequest, []string, error) {
	args := m.Called(ctx, req)
	var quote *models.QuoteRequest
	if args.Get(0) != nil {
		quote = args.Get(0).(*models.QuoteRequest)
	}
	var errs []string
	if args.Get(1) != nil {
		errs = args.Get(1).([]string)
	}
	return quote, errs, args.Error(2)
}

func (m *MockQuoteIntake) GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteRequest), args.Error(1)
}

// MockContactIntake is a mock implementation of services.ContactIntake
type MockContactIntake struct {
	mock.Mock
}

func (m *MockContactIntake) Submit(ctx context.Context, req *models.SubmitContactRequest) (*models.ContactMessage, []string, error) {
	args := m.Called(ctx, req)
	var contact *models.ContactMessage
	if args.Get(0) != nil {
		contact = args.Get(0).(*models.ContactMessage)
	}
	var errs []string
	if args.Get(1) != nil {
		errs = args.Get(1).([]string)
	}
	return contact, errs, args.Error(2)
}

// MockNotificationDispatcher is a mock implementation of services.NotificationDispatcher
type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, quote *models.QuoteRequest) models.DispatchResult {
	args := m.Called(ctx, quote)
	return args.Get(0).(models.DispatchResult)
}

func (m *MockNotificationDispatcher) DispatchByID(ctx context.Context, quoteID uuid.UUID) (models.DispatchResult, error) {
	args := m.Called(ctx, quoteID)
	return args.Get(0).(models.DispatchResult), args.Error(1)
}
