package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmitContactRequest represents a general-inquiry form submission.
type SubmitContactRequest struct {
	FullName  string `json:"fullName" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Phone     string `json:"phone" binding:"required"`
	Service   string `json:"service"`
	HeardFrom string `json:"heardFrom"`
	Message   string `json:"message" binding:"required,min=10,max=500"`
}

// SubmitContactResponse is returned after a successful contact submission.
type SubmitContactResponse struct {
	Success    bool   `json:"success"`
	TrackingID string `json:"trackingId"`
	Message    string `json:"message"`
}

// ContactMessage is a persisted general inquiry. Immutable once created.
type ContactMessage struct {
	ID        uuid.UUID
	FullName  string
	Email     string
	Phone     string
	Service   string
	HeardFrom string
	Message   string
	CreatedAt time.Time
}

// TrackingID returns the tracking reference for a contact message.
func (m *ContactMessage) TrackingID() string {
	return TrackingID("MSG", m.ID, m.CreatedAt)
}
