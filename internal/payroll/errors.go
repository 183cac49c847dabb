package payroll

import "errors"

var (
	ErrNegativeHours  = errors.New("payroll: hours worked must not be negative")
	ErrInvalidRate    = errors.New("payroll: hourly rate must be positive")
	ErrInvalidCISRate = errors.New("payroll: cis rate must be between 0 and 100")
)
