package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func clockIn(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeEarningsFullDayOnTime(t *testing.T) {
	res, err := ComputeEarnings(clockIn(7, 44), dec("8"), dec("18.75"), dec("30"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.GrossEarnings.Equal(dec("150")) {
		t.Fatalf("expected gross 150, got %v", res.GrossEarnings)
	}
	if !res.PunctualityDeduction.IsZero() {
		t.Fatalf("expected no punctuality deduction, got %v", res.PunctualityDeduction)
	}
	if !res.CISDeduction.Equal(dec("45")) {
		t.Fatalf("expected cis 45, got %v", res.CISDeduction)
	}
	if !res.NetEarnings.Equal(dec("105")) {
		t.Fatalf("expected net 105, got %v", res.NetEarnings)
	}
}

func TestComputeEarningsExactlyAtThreshold(t *testing.T) {
	// 08:15 on the dot is not late, and 8.25 hours still pays the flat
	// daily rate.
	res, err := ComputeEarnings(clockIn(8, 15), dec("8.25"), dec("19.50"), dec("20"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.GrossEarnings.Equal(dec("156")) {
		t.Fatalf("expected gross 156, got %v", res.GrossEarnings)
	}
	if !res.PunctualityDeduction.IsZero() {
		t.Fatalf("expected no punctuality deduction, got %v", res.PunctualityDeduction)
	}
	if !res.CISDeduction.Equal(dec("31.2")) {
		t.Fatalf("expected cis 31.2, got %v", res.CISDeduction)
	}
	if !res.NetEarnings.Equal(dec("124.8")) {
		t.Fatalf("expected net 124.8, got %v", res.NetEarnings)
	}
}

func TestComputeEarningsLateFullDay(t *testing.T) {
	// 30 minutes late: 160 gross, minus 15 penalty, CIS on the rest.
	res, err := ComputeEarnings(clockIn(8, 45), dec("8"), dec("20"), dec("20"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.PunctualityDeduction.Equal(dec("15")) {
		t.Fatalf("expected penalty 15, got %v", res.PunctualityDeduction)
	}
	if !res.GrossEarnings.Equal(dec("145")) {
		t.Fatalf("expected gross 145, got %v", res.GrossEarnings)
	}
	if !res.CISDeduction.Equal(dec("29")) {
		t.Fatalf("expected cis 29, got %v", res.CISDeduction)
	}
	if !res.NetEarnings.Equal(dec("116")) {
		t.Fatalf("expected net 116, got %v", res.NetEarnings)
	}
}

func TestComputeEarningsWeekendPartialDayFloors(t *testing.T) {
	// 3 hours at 15.00 with the weekend multiplier is 67.50; the late
	// penalty reduces it further and both floors trigger.
	res, err := ComputeEarnings(clockIn(9, 0), dec("3"), dec("15"), dec("30"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HourlyRate.Equal(dec("22.5")) {
		t.Fatalf("expected effective rate 22.5, got %v", res.HourlyRate)
	}
	if !res.OvertimeRate {
		t.Fatal("expected overtime rate flag")
	}
	if !res.PunctualityDeduction.Equal(dec("22.5")) {
		t.Fatalf("expected penalty 22.5, got %v", res.PunctualityDeduction)
	}
	if !res.GrossEarnings.Equal(dec("100")) {
		t.Fatalf("expected gross floored to 100, got %v", res.GrossEarnings)
	}
	if !res.CISDeduction.Equal(dec("30")) {
		t.Fatalf("expected cis 30, got %v", res.CISDeduction)
	}
	if !res.NetEarnings.Equal(dec("100")) {
		t.Fatalf("expected net floored to 100, got %v", res.NetEarnings)
	}
}

func TestComputeEarningsDailyRateIndependentOfExtraHours(t *testing.T) {
	for _, hours := range []string{"8", "9.5", "12", "16"} {
		res, err := ComputeEarnings(clockIn(7, 30), dec(hours), dec("18"), dec("0"), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.GrossEarnings.Equal(dec("144")) {
			t.Fatalf("hours %s: expected gross 144, got %v", hours, res.GrossEarnings)
		}
	}
}

func TestComputeEarningsWeekendDailyRateStaysAtBase(t *testing.T) {
	// The overtime multiplier applies to the hourly rate only, not to the
	// full-day flat rate.
	res, err := ComputeEarnings(clockIn(7, 30), dec("9"), dec("20"), dec("0"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.GrossEarnings.Equal(dec("160")) {
		t.Fatalf("expected gross 160, got %v", res.GrossEarnings)
	}
	if !res.HourlyRate.Equal(dec("30")) {
		t.Fatalf("expected effective rate 30, got %v", res.HourlyRate)
	}
}

func TestComputeEarningsPartialDayHourlyAccrual(t *testing.T) {
	res, err := ComputeEarnings(clockIn(8, 0), dec("7.5"), dec("20"), dec("0"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.GrossEarnings.Equal(dec("150")) {
		t.Fatalf("expected gross 150, got %v", res.GrossEarnings)
	}
}

func TestComputeEarningsPenaltyCap(t *testing.T) {
	// Three hours late is 180 minutes; the penalty caps at 50.
	res, err := ComputeEarnings(clockIn(11, 15), dec("8"), dec("25"), dec("0"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.PunctualityDeduction.Equal(dec("50")) {
		t.Fatalf("expected penalty capped at 50, got %v", res.PunctualityDeduction)
	}
	if !res.GrossEarnings.Equal(dec("150")) {
		t.Fatalf("expected gross 150, got %v", res.GrossEarnings)
	}
}

func TestComputeEarningsCISMonotonic(t *testing.T) {
	prev := dec("1000000")
	for _, rate := range []string{"0", "10", "20", "30", "45"} {
		res, err := ComputeEarnings(clockIn(7, 30), dec("8"), dec("25"), dec(rate), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.NetEarnings.LessThan(prev) {
			t.Fatalf("cis %s: expected net below %v, got %v", rate, prev, res.NetEarnings)
		}
		if res.NetEarnings.LessThan(dec("100")) {
			t.Fatalf("cis %s: net %v below floor", rate, res.NetEarnings)
		}
		prev = res.NetEarnings
	}
}

func TestComputeEarningsZeroHours(t *testing.T) {
	// No elapsed time means no session worth paying; the floors must not
	// kick in.
	res, err := ComputeEarnings(clockIn(9, 30), decimal.Zero, dec("20"), dec("30"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.GrossEarnings.IsZero() || !res.NetEarnings.IsZero() || !res.CISDeduction.IsZero() {
		t.Fatalf("expected all-zero result, got %+v", res)
	}
}

func TestComputeEarningsDeterministic(t *testing.T) {
	a, err := ComputeEarnings(clockIn(8, 40), dec("6.2"), dec("17.25"), dec("30"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := ComputeEarnings(clockIn(8, 40), dec("6.2"), dec("17.25"), dec("30"), false)
	if !a.NetEarnings.Equal(b.NetEarnings) || !a.GrossEarnings.Equal(b.GrossEarnings) {
		t.Fatalf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestComputeEarningsInvalidInput(t *testing.T) {
	if _, err := ComputeEarnings(clockIn(8, 0), dec("-1"), dec("20"), dec("20"), false); err != ErrNegativeHours {
		t.Fatalf("expected ErrNegativeHours, got %v", err)
	}
	if _, err := ComputeEarnings(clockIn(8, 0), dec("8"), decimal.Zero, dec("20"), false); err != ErrInvalidRate {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if _, err := ComputeEarnings(clockIn(8, 0), dec("8"), dec("20"), dec("101"), false); err != ErrInvalidCISRate {
		t.Fatalf("expected ErrInvalidCISRate, got %v", err)
	}
	if _, err := ComputeEarnings(clockIn(8, 0), dec("8"), dec("20"), dec("-1"), false); err != ErrInvalidCISRate {
		t.Fatalf("expected ErrInvalidCISRate, got %v", err)
	}
}

func TestCISRate(t *testing.T) {
	if !CISRate(true).Equal(dec("20")) {
		t.Fatalf("expected registered rate 20, got %v", CISRate(true))
	}
	if !CISRate(false).Equal(dec("30")) {
		t.Fatalf("expected unregistered rate 30, got %v", CISRate(false))
	}
}
