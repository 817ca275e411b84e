package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/dispatch"
	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockQuoteStore is a mock implementation of services.QuoteStore
type MockQuoteStore struct {
	mock.Mock
}

func (m *MockQuoteStore) Create(ctx context.Context, q *models.QuoteRequest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteStore) GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteRequest), args.Error(1)
}

// MockContactStore is a mock implementation of services.ContactStore
type MockContactStore struct {
	mock.Mock
}

func (m *MockContactStore) Create(ctx context.Context, c *models.ContactMessage) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of services.ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) KeyFromURL(rawURL string) string {
	args := m.Called(rawURL)
	return args.String(0)
}

func (m *MockObjectStorage) PresignGet(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// MockSender is a mock implementation of email.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, to string, content models.EmailContent) error {
	args := m.Called(ctx, to, content)
	return args.Error(0)
}

// MockEnqueuer is a mock implementation of services.NotificationEnqueuer
type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) Enqueue(job dispatch.Job) bool {
	args := m.Called(job)
	return args.Bool(0)
}
