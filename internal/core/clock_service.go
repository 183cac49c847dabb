package core

import (
	"context"
	"fmt"
	"time"

	"crewclock.service/internal/core/model"
	"crewclock.service/internal/geo"
	"crewclock.service/internal/payroll"
	"crewclock.service/internal/ports/messaging"
	"crewclock.service/internal/ports/repository"
	"github.com/shopspring/decimal"
)

const (
	ActionClockIn  = "CLOCK_IN"
	ActionClockOut = "CLOCK_OUT"
)

// ClockOutcome tells the caller which side of the toggle a request landed on.
type ClockOutcome struct {
	SessionID   int64           `json:"sessionId"`
	Action      string          `json:"action"`
	HoursWorked decimal.Decimal `json:"hoursWorked"`
}

type ClockService struct {
	sessions    repository.SessionRepository
	contractors repository.ContractorRepository
	jobs        repository.JobRepository
	producer    messaging.QueueProducer
}

// NewClockService creates a new instance of our main application service,
// wiring up the database repositories and the message queue producer.
func NewClockService(sessions repository.SessionRepository, contractors repository.ContractorRepository, jobs repository.JobRepository, p messaging.QueueProducer) *ClockService {
	return &ClockService{
		sessions:    sessions,
		contractors: contractors,
		jobs:        jobs,
		producer:    p,
	}
}

// ProcessClockInOut is the core business logic. It figures out whether a
// contractor is clocking in or out by checking for an open work session.
// Clock-ins are validated against the job site's geofence.
func (s *ClockService) ProcessClockInOut(ctx context.Context, contractorID, jobID string, lat, lng float64) (*ClockOutcome, error) {
	currentTime := time.Now().UTC()

	openSession, err := s.sessions.FindOpenSession(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open session: %w", err)
	}

	if openSession == nil {
		return s.handleClockIn(ctx, contractorID, jobID, lat, lng, currentTime)
	}

	return s.handleClockOut(ctx, openSession, currentTime)
}

// UpdatePayrollStatus is a simple pass-through to the repository layer,
// mainly used by background workers to update the status of a job.
func (s *ClockService) UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	return s.sessions.UpdatePayrollStatus(ctx, id, status, retryCount)
}

// EarningsPreview computes the as-of-now pay breakdown for the contractor's
// open session. There is deliberately no zero-state guessing: no open session
// is an error the caller must handle.
func (s *ClockService) EarningsPreview(ctx context.Context, contractorID string) (*payroll.EarningsResult, error) {
	session, err := s.sessions.FindOpenSession(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open session: %w", err)
	}
	if session == nil {
		return nil, ErrNoOpenSession
	}

	profile, err := s.contractors.GetPayRateProfile(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pay rate profile: %w", err)
	}
	if profile == nil {
		return nil, ErrContractorNotFound
	}

	job, err := s.jobs.GetJob(ctx, session.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	hours := decimal.NewFromFloat(time.Now().UTC().Sub(session.ClockInTime).Hours())
	result, err := payroll.ComputeEarnings(
		session.ClockInTime,
		hours,
		profile.HourlyRate,
		payroll.CISRate(profile.CISRegistered),
		IsWeekendWork(job, session.ClockInTime),
	)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// IsWeekendWork reports whether the overtime multiplier applies to a session:
// the clock-in fell on a weekend and the site has weekend overtime enabled.
func IsWeekendWork(job *model.Job, clockIn time.Time) bool {
	wd := clockIn.Weekday()
	return (wd == time.Saturday || wd == time.Sunday) && job.WeekendOvertime
}

// handleClockIn handles the clock-in workflow.
func (s *ClockService) handleClockIn(ctx context.Context, contractorID, jobID string, lat, lng float64, clockIn time.Time) (*ClockOutcome, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	if !geo.WithinRadius(lat, lng, job.Latitude, job.Longitude, job.GeofenceRadiusM) {
		return nil, ErrOutsideGeofence
	}

	id, err := s.sessions.CreateClockIn(ctx, contractorID, jobID, clockIn)
	if err != nil {
		return nil, fmt.Errorf("failed to create clock-in record: %w", err)
	}

	return &ClockOutcome{SessionID: id, Action: ActionClockIn}, nil
}

// handleClockOut handles the clock-out workflow, including asynchronous work triggering.
func (s *ClockService) handleClockOut(ctx context.Context, session *model.WorkSession, clockOut time.Time) (*ClockOutcome, error) {
	duration := clockOut.Sub(session.ClockInTime)
	hoursWorked := decimal.NewFromFloat(duration.Hours())

	err := s.sessions.UpdateClockOut(ctx, session.ID, clockOut, hoursWorked, session.ContractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to update clock-out record: %w", err)
	}

	notifyEvent := messaging.NotifyEvent{
		SessionID:    session.ID,
		ContractorID: session.ContractorID,
		HoursWorked:  hoursWorked,
		OccurredAt:   time.Now(),
	}
	s.producer.PublishNotify(ctx, notifyEvent)

	payrollEvent := messaging.PayrollEvent{
		SessionID:    session.ID,
		ContractorID: session.ContractorID,
		JobID:        session.JobID,
		HoursWorked:  hoursWorked,
		ClockInTime:  session.ClockInTime,
		ClockOutTime: clockOut,
	}

	if err := s.producer.PublishPayroll(ctx, payrollEvent); err != nil {
		return nil, fmt.Errorf("failed to publish clock-out event to queue: %w", err)
	}

	return &ClockOutcome{SessionID: session.ID, Action: ActionClockOut, HoursWorked: hoursWorked}, nil
}
