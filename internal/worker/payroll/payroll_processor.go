package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"crewclock.service/internal/core"
	"crewclock.service/internal/core/model"
	calc "crewclock.service/internal/payroll"
	"crewclock.service/internal/ports/messaging"
	"crewclock.service/internal/ports/repository"
	"crewclock.service/internal/worker/accounting"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// PayrollProcessor finalizes the pay breakdown for closed sessions and exports
// the record to the accounting system. It uses a circuit breaker to avoid
// hammering the accounting API if it's having issues.
type PayrollProcessor struct {
	Sessions    repository.SessionRepository
	Contractors repository.ContractorRepository
	Jobs        repository.JobRepository
	accounting  accounting.Client
	cb          *gobreaker.CircuitBreaker
}

// NewProcessor creates a new processor for the payroll queue. It sets up a
// circuit breaker to protect the accounting API from being overwhelmed.
func NewProcessor(sessions repository.SessionRepository, contractors repository.ContractorRepository, jobs repository.JobRepository, client accounting.Client) *PayrollProcessor {
	settings := gobreaker.Settings{
		Name:        "Accounting-API",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger than 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &PayrollProcessor{
		Sessions:    sessions,
		Contractors: contractors,
		Jobs:        jobs,
		accounting:  client,
		cb:          gobreaker.NewCircuitBreaker(settings),
	}
}

// Process is the core logic for handling a message from the payroll queue.
// It recomputes the breakdown with the same calculator the API preview uses,
// stores it, and exports it through the circuit breaker, retrying with
// exponential backoff on failure.
func (p *PayrollProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.PayrollEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal payroll event")
		return false, 0, err // Do not retry on malformed message
	}

	record, err := p.Sessions.GetSession(ctx, event.SessionID)
	if err != nil {
		return true, 10, fmt.Errorf("failed to get session from db: %w", err)
	}

	if record.PayrollStatus == model.StatusPayrollCompleted {
		return false, 0, nil
	}

	result, err := p.finalize(ctx, &event)
	if err != nil {
		if unrecoverable(err) {
			// A session that cannot be computed will never succeed on retry.
			return false, 0, err
		}
		newCount := record.PayrollRetryCount + 1
		p.Sessions.UpdatePayrollStatus(ctx, event.SessionID, model.StatusPayrollPending, newCount)
		return true, calculateBackoff(newCount), err
	}

	payRecord := accounting.PayRecord{
		SessionID:            event.SessionID,
		ContractorID:         event.ContractorID,
		HoursWorked:          result.HoursWorked,
		GrossEarnings:        result.GrossEarnings,
		PunctualityDeduction: result.PunctualityDeduction,
		CISDeduction:         result.CISDeduction,
		NetEarnings:          result.NetEarnings,
		ClockOutTime:         event.ClockOutTime,
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.accounting.ExportPayRecord(ctx, payRecord)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			log.Ctx(ctx).Warn().Msg("Circuit Breaker is OPEN; skipping accounting API call")
		}
		newCount := record.PayrollRetryCount + 1
		p.Sessions.UpdatePayrollStatus(ctx, event.SessionID, model.StatusPayrollPending, newCount)

		delay := calculateBackoff(newCount)
		return true, delay, err
	}

	err = p.Sessions.UpdatePayrollStatus(ctx, event.SessionID, model.StatusPayrollCompleted, 0)
	return false, 0, err
}

// finalize computes and persists the pay breakdown for a closed session.
func (p *PayrollProcessor) finalize(ctx context.Context, event *messaging.PayrollEvent) (*calc.EarningsResult, error) {
	profile, err := p.Contractors.GetPayRateProfile(ctx, event.ContractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pay rate profile: %w", err)
	}
	if profile == nil {
		return nil, core.ErrContractorNotFound
	}

	job, err := p.Jobs.GetJob(ctx, event.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, core.ErrJobNotFound
	}

	result, err := calc.ComputeEarnings(
		event.ClockInTime,
		event.HoursWorked,
		profile.HourlyRate,
		calc.CISRate(profile.CISRegistered),
		core.IsWeekendWork(job, event.ClockInTime),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute earnings: %w", err)
	}

	if err := p.Sessions.SaveEarnings(ctx, event.SessionID, result.GrossEarnings, result.PunctualityDeduction, result.CISDeduction, result.NetEarnings); err != nil {
		return nil, fmt.Errorf("failed to save earnings: %w", err)
	}

	return &result, nil
}

// unrecoverable reports whether a finalization error can never succeed on a
// retry: missing reference data or invalid calculator input.
func unrecoverable(err error) bool {
	return errors.Is(err, core.ErrContractorNotFound) ||
		errors.Is(err, core.ErrJobNotFound) ||
		errors.Is(err, calc.ErrNegativeHours) ||
		errors.Is(err, calc.ErrInvalidRate) ||
		errors.Is(err, calc.ErrInvalidCISRate)
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 {
		return 3600 // max at 1 hour
	}
	return backoff
}
