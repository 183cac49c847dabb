package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"crewclock.service/internal/core/model"
	"github.com/shopspring/decimal"
)

type fakeSessionRepo struct {
	open     *model.WorkSession
	created  int
	closedID int64
	nextID   int64
}

func (f *fakeSessionRepo) GetSession(ctx context.Context, id int64) (*model.WorkSession, error) {
	return f.open, nil
}

func (f *fakeSessionRepo) CreateClockIn(ctx context.Context, contractorID, jobID string, clockIn time.Time) (int64, error) {
	f.created++
	f.nextID++
	f.open = &model.WorkSession{ID: f.nextID, ContractorID: contractorID, JobID: jobID, ClockInTime: clockIn}
	return f.nextID, nil
}

func (f *fakeSessionRepo) UpdateClockOut(ctx context.Context, id int64, clockOut time.Time, hoursWorked decimal.Decimal, contractorID string) error {
	f.closedID = id
	f.open = nil
	return nil
}

func (f *fakeSessionRepo) FindOpenSession(ctx context.Context, contractorID string) (*model.WorkSession, error) {
	return f.open, nil
}

func (f *fakeSessionRepo) SaveEarnings(ctx context.Context, id int64, gross, punctuality, cis, net decimal.Decimal) error {
	return nil
}

func (f *fakeSessionRepo) UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	return nil
}

func (f *fakeSessionRepo) UpdateNotifyStatus(ctx context.Context, id int64, status model.NotifyStatus, retryCount int) error {
	return nil
}

type fakeContractorRepo struct {
	profile *model.PayRateProfile
}

func (f *fakeContractorRepo) GetPayRateProfile(ctx context.Context, contractorID string) (*model.PayRateProfile, error) {
	return f.profile, nil
}

type fakeJobRepo struct {
	job *model.Job
}

func (f *fakeJobRepo) GetJob(ctx context.Context, id string) (*model.Job, error) {
	return f.job, nil
}

func (f *fakeJobRepo) InsertJob(ctx context.Context, job model.Job) error { return nil }

func (f *fakeJobRepo) ListJobs(ctx context.Context) ([]model.Job, error) { return nil, nil }

type fakeProducer struct {
	payrollEvents []interface{}
	notifyEvents  []interface{}
}

func (f *fakeProducer) PublishPayroll(ctx context.Context, body interface{}) error {
	f.payrollEvents = append(f.payrollEvents, body)
	return nil
}

func (f *fakeProducer) PublishNotify(ctx context.Context, body interface{}) error {
	f.notifyEvents = append(f.notifyEvents, body)
	return nil
}

func siteJob() *model.Job {
	return &model.Job{
		ID:              "job-1",
		Title:           "Moorgate refurb",
		Latitude:        51.5155,
		Longitude:       -0.0922,
		GeofenceRadiusM: 150,
	}
}

func newTestService() (*ClockService, *fakeSessionRepo, *fakeProducer) {
	sessions := &fakeSessionRepo{}
	contractors := &fakeContractorRepo{profile: &model.PayRateProfile{
		ContractorID: "sub-1",
		HourlyRate:   decimal.RequireFromString("18.75"),
	}}
	jobs := &fakeJobRepo{job: siteJob()}
	producer := &fakeProducer{}
	return NewClockService(sessions, contractors, jobs, producer), sessions, producer
}

func TestProcessClockInOutToggles(t *testing.T) {
	svc, sessions, producer := newTestService()
	ctx := context.Background()

	out, err := svc.ProcessClockInOut(ctx, "sub-1", "job-1", 51.5155, -0.0922)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Action != ActionClockIn {
		t.Fatalf("expected clock-in, got %s", out.Action)
	}
	if sessions.created != 1 {
		t.Fatalf("expected 1 created session, got %d", sessions.created)
	}

	out, err = svc.ProcessClockInOut(ctx, "sub-1", "job-1", 51.5155, -0.0922)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Action != ActionClockOut {
		t.Fatalf("expected clock-out, got %s", out.Action)
	}
	if len(producer.payrollEvents) != 1 || len(producer.notifyEvents) != 1 {
		t.Fatalf("expected one payroll and one notify event, got %d/%d", len(producer.payrollEvents), len(producer.notifyEvents))
	}
}

func TestProcessClockInRejectsOutsideGeofence(t *testing.T) {
	svc, sessions, _ := newTestService()

	// Roughly 1km north of the site.
	_, err := svc.ProcessClockInOut(context.Background(), "sub-1", "job-1", 51.5255, -0.0922)
	if !errors.Is(err, ErrOutsideGeofence) {
		t.Fatalf("expected ErrOutsideGeofence, got %v", err)
	}
	if sessions.created != 0 {
		t.Fatal("expected no session to be created")
	}
}

func TestProcessClockInUnknownJob(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := NewClockService(sessions, &fakeContractorRepo{}, &fakeJobRepo{job: nil}, &fakeProducer{})

	_, err := svc.ProcessClockInOut(context.Background(), "sub-1", "nope", 51.5155, -0.0922)
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestEarningsPreviewNoOpenSession(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.EarningsPreview(context.Background(), "sub-1")
	if !errors.Is(err, ErrNoOpenSession) {
		t.Fatalf("expected ErrNoOpenSession, got %v", err)
	}
}

func TestEarningsPreviewOpenSession(t *testing.T) {
	svc, sessions, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProcessClockInOut(ctx, "sub-1", "job-1", 51.5155, -0.0922); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Backdate the clock-in so the preview sees elapsed time.
	sessions.open.ClockInTime = time.Now().UTC().Add(-2 * time.Hour)

	result, err := svc.EarningsPreview(ctx, "sub-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.HourlyRate.Equal(decimal.RequireFromString("18.75")) {
		t.Fatalf("expected effective rate 18.75, got %v", result.HourlyRate)
	}
	if result.HoursWorked.LessThan(decimal.NewFromInt(2)) {
		t.Fatalf("expected at least 2 hours, got %v", result.HoursWorked)
	}
}

func TestIsWeekendWork(t *testing.T) {
	saturday := time.Date(2025, 6, 7, 8, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	overtimeSite := siteJob()
	overtimeSite.WeekendOvertime = true

	if !IsWeekendWork(overtimeSite, saturday) {
		t.Fatal("expected weekend work on a Saturday at an overtime-enabled site")
	}
	if IsWeekendWork(overtimeSite, monday) {
		t.Fatal("expected no weekend work on a Monday")
	}
	if IsWeekendWork(siteJob(), saturday) {
		t.Fatal("expected no weekend work when the site has overtime disabled")
	}
}
