package payroll

import "github.com/shopspring/decimal"

// Clock-in later than 08:15 counts as late.
const (
	LateThresholdHour   = 8
	LateThresholdMinute = 15
)

var (
	// StandardDayHours is the number of hours after which the flat daily
	// rate applies instead of hourly accrual.
	StandardDayHours = decimal.NewFromInt(8)

	// OvertimeMultiplier applies to the hourly rate on weekend shifts.
	OvertimeMultiplier = decimal.RequireFromString("1.5")

	// LatePenaltyPerMinute is charged for every minute past the late
	// threshold, up to LatePenaltyCap.
	LatePenaltyPerMinute = decimal.RequireFromString("0.50")
	LatePenaltyCap       = decimal.NewFromInt(50)

	// MinimumDailyPay is the floor applied to both adjusted gross and net
	// pay for any worked session.
	MinimumDailyPay = decimal.NewFromInt(100)

	// CIS withholding tiers, driven by the contractor's registration
	// status with the scheme.
	CISRateRegistered   = decimal.NewFromInt(20)
	CISRateUnregistered = decimal.NewFromInt(30)
)
