package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// EarningsResult is the pay breakdown for a single work session. It is
// recomputed on demand and never persisted as a source of truth; amounts stay
// unrounded until display.
type EarningsResult struct {
	HoursWorked          decimal.Decimal `json:"hoursWorked"`
	HourlyRate           decimal.Decimal `json:"hourlyRate"`
	GrossEarnings        decimal.Decimal `json:"grossEarnings"`
	PunctualityDeduction decimal.Decimal `json:"punctualityDeduction"`
	CISDeduction         decimal.Decimal `json:"cisDeduction"`
	NetEarnings          decimal.Decimal `json:"netEarnings"`
	OvertimeRate         bool            `json:"isOvertimeRate"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeEarnings calculates the pay breakdown for a session.
//
// clockIn supplies only the wall-clock hour and minute of the clock-in, in the
// site's civil time zone; it drives the punctuality deduction. hoursWorked may
// be a live elapsed value for an open session or the final value for a closed
// one. Weekend shifts earn the overtime multiplier on the hourly rate, but the
// full-day rate stays at eight times the base rate.
//
// Once a session reaches a full day the flat daily rate applies regardless of
// further hours. Lateness past 08:15 costs LatePenaltyPerMinute per minute,
// capped. Adjusted gross and net pay are each floored at MinimumDailyPay; the
// floors do not apply to a zero-hour session, which yields an all-zero result.
func ComputeEarnings(clockIn time.Time, hoursWorked, hourlyRate, cisRatePercent decimal.Decimal, weekend bool) (EarningsResult, error) {
	if hoursWorked.IsNegative() {
		return EarningsResult{}, ErrNegativeHours
	}
	if !hourlyRate.IsPositive() {
		return EarningsResult{}, ErrInvalidRate
	}
	if cisRatePercent.IsNegative() || cisRatePercent.GreaterThan(oneHundred) {
		return EarningsResult{}, ErrInvalidCISRate
	}

	if hoursWorked.IsZero() {
		return EarningsResult{OvertimeRate: weekend}, nil
	}

	effectiveRate := hourlyRate
	if weekend {
		effectiveRate = hourlyRate.Mul(OvertimeMultiplier)
	}

	var gross decimal.Decimal
	if hoursWorked.GreaterThanOrEqual(StandardDayHours) {
		gross = hourlyRate.Mul(StandardDayHours)
	} else {
		gross = hoursWorked.Mul(effectiveRate)
	}

	penalty := punctualityDeduction(clockIn)
	adjustedGross := decimal.Max(MinimumDailyPay, gross.Sub(penalty))

	cis := adjustedGross.Mul(cisRatePercent).Div(oneHundred)
	net := decimal.Max(adjustedGross.Sub(cis), MinimumDailyPay)

	return EarningsResult{
		HoursWorked:          hoursWorked,
		HourlyRate:           effectiveRate,
		GrossEarnings:        adjustedGross,
		PunctualityDeduction: penalty,
		CISDeduction:         cis,
		NetEarnings:          net,
		OvertimeRate:         weekend,
	}, nil
}

// punctualityDeduction charges per minute late past the threshold, capped.
// Seconds are ignored: clocking in at 08:15:59 is still on time.
func punctualityDeduction(clockIn time.Time) decimal.Decimal {
	threshold := LateThresholdHour*60 + LateThresholdMinute
	lateBy := clockIn.Hour()*60 + clockIn.Minute() - threshold
	if lateBy <= 0 {
		return decimal.Zero
	}
	penalty := decimal.NewFromInt(int64(lateBy)).Mul(LatePenaltyPerMinute)
	return decimal.Min(penalty, LatePenaltyCap)
}

// CISRate maps a contractor's scheme registration status to the withholding
// percentage applied to gross pay.
func CISRate(registered bool) decimal.Decimal {
	if registered {
		return CISRateRegistered
	}
	return CISRateUnregistered
}
