package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"github.com/hearthside/hearthside-api/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ContactRepository handles contact message data access
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new contact repository
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// Create inserts a new contact message. The store assigns id and
// created_at; both are written back into m.
func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	start := time.Now()
	operation := "createContactMessage"

	query := `
		INSERT INTO contact_messages
			(full_name, email, phone, service, heard_from, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		m.FullName,
		m.Email,
		m.Phone,
		nilIfEmpty(m.Service),
		nilIfEmpty(m.HeardFrom),
		m.Message,
	).Scan(&m.ID, &m.CreatedAt)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)

	return nil
}
