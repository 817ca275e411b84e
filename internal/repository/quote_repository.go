package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hearthside/hearthside-api/internal/models"
	apperrors "github.com/hearthside/hearthside-api/pkg/errors"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"github.com/hearthside/hearthside-api/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// QuoteRepository handles quote request data access
type QuoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

// Create inserts a new quote request. The store assigns id and created_at;
// both are written back into q.
func (r *QuoteRepository) Create(ctx context.Context, q *models.QuoteRequest) error {
	start := time.Now()
	operation := "createQuoteRequest"

	query := `
		INSERT INTO quote_requests
			(customer_name, email, phone, service_requested, property_city, property_state, message, image_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		q.CustomerName,
		q.Email,
		nilIfEmpty(q.Phone),
		q.ServiceRequested,
		nilIfEmpty(q.PropertyCity),
		nilIfEmpty(q.PropertyState),
		nilIfEmpty(q.Message),
		q.ImageURLs,
	).Scan(&q.ID, &q.CreatedAt)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to create quote request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)

	return nil
}

// GetByID fetches a single quote request.
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	start := time.Now()
	operation := "getQuoteRequest"

	query := `
		SELECT id, customer_name, email,
			COALESCE(phone, ''), service_requested,
			COALESCE(property_city, ''), COALESCE(property_state, ''),
			COALESCE(message, ''), COALESCE(image_urls, '{}'), created_at
		FROM quote_requests
		WHERE id = $1
	`

	var q models.QuoteRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID,
		&q.CustomerName,
		&q.Email,
		&q.Phone,
		&q.ServiceRequested,
		&q.PropertyCity,
		&q.PropertyState,
		&q.Message,
		&q.ImageURLs,
		&q.CreatedAt,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("quote request")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return &q, nil
}

func recordMetrics(operation, status string, duration float64) {
	metrics.DBRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues(operation, status).Inc()
}

// nilIfEmpty maps empty strings to NULL for optional columns
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
