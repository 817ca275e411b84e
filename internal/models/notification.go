package models

// SendNotificationRequest is the payload of the internal notification
// endpoint: the persisted quote's fields plus its identifiers.
type SendNotificationRequest struct {
	QuoteID    string   `json:"quoteId" binding:"required"`
	TrackingID string   `json:"trackingId"`
	ImageURLs  []string `json:"imageUrls"`
}

// SendNotificationResponse reports which deliveries succeeded.
// SMS is not part of this workflow and is always false.
type SendNotificationResponse struct {
	Success       bool   `json:"success"`
	SMS           bool   `json:"sms"`
	BusinessEmail bool   `json:"businessEmail"`
	CustomerEmail bool   `json:"customerEmail"`
	Error         string `json:"error,omitempty"`
}

// DispatchResult is the structured outcome of one notification dispatch.
// Dispatch never propagates an error to its caller; it reports here.
type DispatchResult struct {
	BusinessEmail bool
	CustomerEmail bool
}

// EmailContent is one rendered message: subject plus equivalent HTML and
// plain-text renditions.
type EmailContent struct {
	Subject string
	HTML    string
	Text    string
}
