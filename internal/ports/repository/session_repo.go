package repository

import (
	"context"
	"database/sql"
	"time"

	"crewclock.service/internal/core/model"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SessionRepository contract
type SessionRepository interface {
	GetSession(ctx context.Context, id int64) (*model.WorkSession, error)
	CreateClockIn(ctx context.Context, contractorID, jobID string, clockIn time.Time) (int64, error)
	UpdateClockOut(ctx context.Context, id int64, clockOut time.Time, hoursWorked decimal.Decimal, contractorID string) error
	FindOpenSession(ctx context.Context, contractorID string) (*model.WorkSession, error)
	SaveEarnings(ctx context.Context, id int64, gross, punctuality, cis, net decimal.Decimal) error
	UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error
	UpdateNotifyStatus(ctx context.Context, id int64, status model.NotifyStatus, retryCount int) error
}

// WorkSessionRepository is the concrete implementation for a PostgreSQL database.
type WorkSessionRepository struct {
	DB *sql.DB
}

// NewWorkSessionRepository create new instance
func NewWorkSessionRepository(db *sql.DB) SessionRepository {
	return &WorkSessionRepository{DB: db}
}

// CreateClockIn opens a new work session.
func (r *WorkSessionRepository) CreateClockIn(ctx context.Context, contractorID, jobID string, clockIn time.Time) (int64, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.contractor_id", contractorID))

	var id int64
	query := `INSERT INTO work_sessions (contractor_id, job_id, clock_in_time, payroll_status, payroll_retry_count, notify_status, notify_retry_count)
              VALUES ($1, $2, $3, $4, 0, $5, 0) RETURNING id`

	err := r.DB.QueryRowContext(ctx, query, contractorID, jobID, clockIn, model.StatusPayrollPending, model.StatusNotifyPending).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateClockOut closes a session. The earnings columns stay empty until the
// payroll worker finalizes them.
func (r *WorkSessionRepository) UpdateClockOut(ctx context.Context, id int64, clockOut time.Time, hoursWorked decimal.Decimal, contractorID string) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.contractor_id", contractorID))
	query := `UPDATE work_sessions
              SET clock_out_time = $1,
                  hours_worked = $2,
                  payroll_status = $3
              WHERE id = $4`

	_, err := r.DB.ExecContext(ctx, query, clockOut, hoursWorked, model.StatusPayrollPending, id)

	return err
}

// FindOpenSession returns the contractor's current open session, or nil when
// they are clocked out.
func (r *WorkSessionRepository) FindOpenSession(ctx context.Context, contractorID string) (*model.WorkSession, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.contractor_id", contractorID))

	var clockIn time.Time
	ws := &model.WorkSession{ContractorID: contractorID}

	query := `SELECT id, job_id, clock_in_time, payroll_status, payroll_retry_count
              FROM work_sessions
              WHERE contractor_id = $1 AND clock_out_time IS NULL
              ORDER BY clock_in_time DESC
              LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, contractorID)
	err := row.Scan(&ws.ID, &ws.JobID, &clockIn, &ws.PayrollStatus, &ws.PayrollRetryCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ws.ClockInTime = clockIn
	return ws, nil
}

// SaveEarnings stores the finalized pay breakdown on the session row.
func (r *WorkSessionRepository) SaveEarnings(ctx context.Context, id int64, gross, punctuality, cis, net decimal.Decimal) error {
	query := `UPDATE work_sessions
              SET gross_earnings = $1,
                  punctuality_deduction = $2,
                  cis_deduction = $3,
                  net_earnings = $4
              WHERE id = $5`

	_, err := r.DB.ExecContext(ctx, query, gross, punctuality, cis, net, id)

	return err
}

// UpdatePayrollStatus updates the status and retry count for a payroll job.
func (r *WorkSessionRepository) UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	query := `UPDATE work_sessions
              SET payroll_status = $1,
                  payroll_retry_count = $2
              WHERE id = $3`

	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)

	return err
}

// UpdateNotifyStatus updates the status and retry count for a notification job.
func (r *WorkSessionRepository) UpdateNotifyStatus(ctx context.Context, id int64, status model.NotifyStatus, retryCount int) error {
	query := `UPDATE work_sessions SET notify_status = $1, notify_retry_count = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}

// GetSession fetches a complete work_sessions record by its ID.
func (r *WorkSessionRepository) GetSession(ctx context.Context, id int64) (*model.WorkSession, error) {
	query := `SELECT id, contractor_id, job_id, clock_in_time, clock_out_time, hours_worked,
                     gross_earnings, punctuality_deduction, cis_deduction, net_earnings,
                     payroll_status, payroll_retry_count, notify_status, notify_retry_count
              FROM work_sessions WHERE id = $1`

	ws := &model.WorkSession{}
	var clockOut sql.NullTime
	var hours, gross, punctuality, cis, net decimal.NullDecimal
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&ws.ID, &ws.ContractorID, &ws.JobID, &ws.ClockInTime, &clockOut, &hours,
		&gross, &punctuality, &cis, &net,
		&ws.PayrollStatus, &ws.PayrollRetryCount, &ws.NotifyStatus, &ws.NotifyRetryCount,
	)
	if err != nil {
		return nil, err
	}
	if clockOut.Valid {
		t := clockOut.Time
		ws.ClockOutTime = &t
	}
	ws.HoursWorked = hours.Decimal
	ws.GrossEarnings = gross.Decimal
	ws.PunctualityDeduction = punctuality.Decimal
	ws.CISDeduction = cis.Decimal
	ws.NetEarnings = net.Decimal
	return ws, nil
}
