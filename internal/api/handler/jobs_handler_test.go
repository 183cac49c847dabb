package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestImportJobsHappyPath(t *testing.T) {
	repo := &fakeJobRepo{}
	h := &JobsHandler{Jobs: repo}

	csvBody := strings.Join([]string{
		"title,postcode,latitude,longitude,radius_m,weekend_overtime",
		"Moorgate refurb,EC2Y 9AE,51.5155,-0.0922,100,true",
		"Brentford site,TW8 8FB,51.4838,-0.3089,,false",
	}, "\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/import", strings.NewReader(csvBody))
	rec := httptest.NewRecorder()
	h.ImportJobs(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var result importResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 0 {
		t.Fatalf("expected 2 imported / 0 skipped, got %+v", result)
	}

	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 inserted jobs, got %d", len(repo.inserted))
	}
	first := repo.inserted[0]
	if first.Title != "Moorgate refurb" || !first.WeekendOvertime || first.GeofenceRadiusM != 100 {
		t.Fatalf("unexpected first job: %+v", first)
	}
	if first.ID == "" {
		t.Fatal("expected a generated job ID")
	}
	// Missing radius falls back to the default.
	if repo.inserted[1].GeofenceRadiusM != defaultGeofenceRadiusM {
		t.Fatalf("expected default radius, got %v", repo.inserted[1].GeofenceRadiusM)
	}
}

func TestImportJobsSkipsMalformedRows(t *testing.T) {
	repo := &fakeJobRepo{}
	h := &JobsHandler{Jobs: repo}

	csvBody := strings.Join([]string{
		"title,postcode,latitude,longitude,radius_m,weekend_overtime",
		",EC2Y 9AE,51.5155,-0.0922,100,true",
		"Bad coords,EC2Y 9AE,not-a-number,-0.0922,100,false",
		"Good site,EC2Y 9AE,51.5155,-0.0922,100,false",
	}, "\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/import", strings.NewReader(csvBody))
	rec := httptest.NewRecorder()
	h.ImportJobs(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var result importResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Imported != 1 || result.Skipped != 2 {
		t.Fatalf("expected 1 imported / 2 skipped, got %+v", result)
	}
}

func TestImportJobsRejectsEmptyBody(t *testing.T) {
	h := &JobsHandler{Jobs: &fakeJobRepo{}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/import", strings.NewReader(""))
	rec := httptest.NewRecorder()
	h.ImportJobs(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListJobs(t *testing.T) {
	repo := &fakeJobRepo{}
	h := &JobsHandler{Jobs: repo}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	rec := httptest.NewRecorder()
	h.ListJobs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
