package messaging

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollEvent is the JSON payload sent via SQS when a session closes and its
// pay breakdown needs finalizing.
type PayrollEvent struct {
	SessionID    int64           `json:"sessionId"`
	ContractorID string          `json:"contractorId"`
	JobID        string          `json:"jobId"`
	HoursWorked  decimal.Decimal `json:"hoursWorked"`
	ClockInTime  time.Time       `json:"clockInTime"`
	ClockOutTime time.Time       `json:"clockOutTime"`
}

// NotifyEvent is the JSON payload sent via SQS for the pay-summary
// notification queue.
type NotifyEvent struct {
	SessionID    int64           `json:"sessionId"`
	ContractorID string          `json:"contractorId"`
	HoursWorked  decimal.Decimal `json:"hoursWorked"`
	OccurredAt   time.Time       `json:"occurredAt"`
}
