package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"crewclock.service/internal/core"
	"crewclock.service/internal/core/model"
	"crewclock.service/internal/payroll"
	"crewclock.service/internal/ports/messaging"
	"crewclock.service/internal/ports/repository"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
)

type NotifyProcessor struct {
	notifyService core.NotifyService
	sessions      repository.SessionRepository
	contractors   repository.ContractorRepository
}

// NewProcessor sets up a new processor for handling pay-summary notification
// jobs. It needs a notify service to send the summary and a repository to
// update the job status.
func NewProcessor(notifyService core.NotifyService, sessions repository.SessionRepository, contractors repository.ContractorRepository) *NotifyProcessor {
	return &NotifyProcessor{
		notifyService: notifyService,
		sessions:      sessions,
		contractors:   contractors,
	}
}

// Process is the main entry point for handling a message from the notify
// queue. It reads the finalized breakdown off the session row and emails it,
// telling the worker to retry if something goes wrong.
func (p *NotifyProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.NotifyEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal notify event")
		return false, 0, err // Do not retry on malformed message
	}

	record, err := p.sessions.GetSession(ctx, event.SessionID)
	if err != nil {
		// If we can't get the record, retry after a short delay.
		return true, 10, fmt.Errorf("failed to get session from db for notification: %w", err)
	}

	if record.NotifyStatus == model.StatusNotifyCompleted {
		log.Ctx(ctx).Info().Int64("session_id", event.SessionID).Msg("Pay summary already sent. Skipping.")
		return false, 0, nil
	}

	// The payroll worker may not have finalized the breakdown yet; wait for
	// it rather than mailing zeros.
	if record.PayrollStatus != model.StatusPayrollCompleted {
		return true, 30, fmt.Errorf("session %d not finalized yet", event.SessionID)
	}

	profile, err := p.contractors.GetPayRateProfile(ctx, event.ContractorID)
	if err != nil {
		return true, 10, fmt.Errorf("failed to load pay rate profile: %w", err)
	}
	if profile == nil {
		return false, 0, core.ErrContractorNotFound
	}

	summary := payroll.EarningsResult{
		HoursWorked:          record.HoursWorked,
		GrossEarnings:        record.GrossEarnings,
		PunctualityDeduction: record.PunctualityDeduction,
		CISDeduction:         record.CISDeduction,
		NetEarnings:          record.NetEarnings,
	}

	if err := p.notifyService.SendPaySummary(ctx, profile.Email, summary); err != nil {
		newCount := record.NotifyRetryCount + 1
		p.sessions.UpdateNotifyStatus(ctx, event.SessionID, model.StatusNotifyPending, newCount)

		delay := calculateBackoff(newCount)
		return true, delay, err
	}

	err = p.sessions.UpdateNotifyStatus(ctx, event.SessionID, model.StatusNotifyCompleted, 0)
	return false, 0, err
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry to avoid overwhelming a struggling service.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 { // Cap at 1 hour
		return 3600
	}
	return backoff
}
