package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/pkg/httpclient"
)

// Submitter posts an assembled quote request to the intake API.
type Submitter interface {
	SubmitQuote(ctx context.Context, req *models.SubmitQuoteRequest) (*models.SubmitQuoteResponse, error)
}

// APIClient is the HTTP submitter used by the wizard against a running
// intake API.
type APIClient struct {
	http    httpclient.Client
	baseURL string
}

// NewAPIClient creates a submitter targeting baseURL.
func NewAPIClient(client httpclient.Client, baseURL string) *APIClient {
	return &APIClient{
		http:    client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// SubmitQuote posts to /api/v1/submit-quote. Both the success and the
// validation-failure responses decode into SubmitQuoteResponse; the
// caller branches on Success. Transport failures and unexpected status
// codes come back as errors.
func (c *APIClient) SubmitQuote(ctx context.Context, req *models.SubmitQuoteRequest) (*models.SubmitQuoteResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/submit-quote", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to submit quote request: %w", err)
	}
	defer httpResp.Body.Close()

	switch httpResp.StatusCode {
	case http.StatusOK, http.StatusBadRequest:
		var resp models.SubmitQuoteResponse
		if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return &resp, nil
	default:
		return nil, fmt.Errorf("quote submission failed with status %d", httpResp.StatusCode)
	}
}

var _ Submitter = (*APIClient)(nil)
