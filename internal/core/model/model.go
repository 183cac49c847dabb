package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus defines the state of the async payroll finalization for a
// closed session.
type PayrollStatus string

const (
	StatusPayrollPending    PayrollStatus = "PENDING"
	StatusPayrollProcessing PayrollStatus = "PROCESSING"
	StatusPayrollCompleted  PayrollStatus = "COMPLETED"
	StatusPayrollFailed     PayrollStatus = "FAILED"
)

// NotifyStatus defines the state of the pay-summary notification processing.
type NotifyStatus string

const (
	StatusNotifyPending    NotifyStatus = "PENDING"
	StatusNotifyProcessing NotifyStatus = "PROCESSING"
	StatusNotifyCompleted  NotifyStatus = "COMPLETED"
	StatusNotifyFailed     NotifyStatus = "FAILED"
)

// WorkSession is one clock-in/clock-out span for a contractor on a job.
// ClockOutTime is nil while the session is open; a closed session is
// read-only for payroll purposes.
type WorkSession struct {
	ID                   int64           `json:"id"`
	ContractorID         string          `json:"contractorId"`
	JobID                string          `json:"jobId"`
	ClockInTime          time.Time       `json:"clockInTime"`
	ClockOutTime         *time.Time      `json:"clockOutTime,omitempty"`
	HoursWorked          decimal.Decimal `json:"hoursWorked"`
	GrossEarnings        decimal.Decimal `json:"grossEarnings"`
	PunctualityDeduction decimal.Decimal `json:"punctualityDeduction"`
	CISDeduction         decimal.Decimal `json:"cisDeduction"`
	NetEarnings          decimal.Decimal `json:"netEarnings"`
	PayrollStatus        PayrollStatus   `json:"payrollStatus"`
	NotifyStatus         NotifyStatus    `json:"notifyStatus"`
	PayrollRetryCount    int             `json:"payrollRetryCount"`
	NotifyRetryCount     int             `json:"notifyRetryCount"`
}

// PayRateProfile is the slice of the contractor record the payroll
// calculation needs. Looked up, never mutated, by this service.
type PayRateProfile struct {
	ContractorID  string          `json:"contractorId"`
	HourlyRate    decimal.Decimal `json:"hourlyRate"`
	CISRegistered bool            `json:"cisRegistered"`
	Email         string          `json:"email"`
}

// Job is a work site a contractor can be assigned to. The geofence radius is
// in meters; clock-ins outside it are rejected. WeekendOvertime mirrors the
// per-site Saturday overtime setting.
type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Postcode        string    `json:"postcode"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	GeofenceRadiusM float64   `json:"geofenceRadiusM"`
	WeekendOvertime bool      `json:"weekendOvertime"`
	CreatedAt       time.Time `json:"createdAt"`
}
