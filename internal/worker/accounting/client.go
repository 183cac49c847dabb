package accounting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PayRecord is the finalized pay breakdown exported to the accounting system
// for a closed session.
type PayRecord struct {
	SessionID            int64           `json:"sessionId"`
	ContractorID         string          `json:"contractorId"`
	HoursWorked          decimal.Decimal `json:"hoursWorked"`
	GrossEarnings        decimal.Decimal `json:"grossEarnings"`
	PunctualityDeduction decimal.Decimal `json:"punctualityDeduction"`
	CISDeduction         decimal.Decimal `json:"cisDeduction"`
	NetEarnings          decimal.Decimal `json:"netEarnings"`
	ClockOutTime         time.Time       `json:"clockOutTime"`
}

// Client contract for the external accounting system
type Client interface {
	ExportPayRecord(ctx context.Context, record PayRecord) error
}

// HTTPClient API client using HTTP
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient new HTTPClient
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// ExportPayRecord sends the pay record to the accounting API
func (c *HTTPClient) ExportPayRecord(ctx context.Context, record PayRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal accounting payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create accounting api request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call accounting api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("accounting api returned non-successful status code: %d", resp.StatusCode)
	}

	log.Ctx(ctx).Info().Str("contractor_id", record.ContractorID).Int64("session_id", record.SessionID).Msg("Exported pay record to accounting system")
	return nil
}
