package handler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crewclock.service/internal/core/model"
	"crewclock.service/internal/ports/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// defaultGeofenceRadiusM applies when an imported job row has no radius.
const defaultGeofenceRadiusM = 150

type JobsHandler struct {
	Jobs repository.JobRepository
}

type importResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportJobs ingests a CSV body of job sites. Columns are matched by header
// name (title, postcode, latitude, longitude, radius_m, weekend_overtime);
// malformed rows are skipped and counted.
func (h *JobsHandler) ImportJobs(w http.ResponseWriter, r *http.Request) {
	reader := csv.NewReader(r.Body)
	headers, err := reader.Read()
	if err != nil {
		http.Error(w, "Invalid CSV payload", http.StatusBadRequest)
		return
	}

	index := map[string]int{}
	for i, name := range headers {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	get := func(row []string, key string) string {
		if idx, ok := index[key]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var result importResult
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			http.Error(w, "Invalid CSV payload", http.StatusBadRequest)
			return
		}

		title := get(row, "title")
		lat, latErr := strconv.ParseFloat(get(row, "latitude"), 64)
		lng, lngErr := strconv.ParseFloat(get(row, "longitude"), 64)
		if title == "" || latErr != nil || lngErr != nil {
			log.Ctx(r.Context()).Warn().Strs("row", row).Msg("Skipping malformed job row")
			result.Skipped++
			continue
		}

		radius, err := strconv.ParseFloat(get(row, "radius_m"), 64)
		if err != nil || radius <= 0 {
			radius = defaultGeofenceRadiusM
		}

		job := model.Job{
			ID:              uuid.NewString(),
			Title:           title,
			Postcode:        get(row, "postcode"),
			Latitude:        lat,
			Longitude:       lng,
			GeofenceRadiusM: radius,
			WeekendOvertime: strings.EqualFold(get(row, "weekend_overtime"), "true"),
			CreatedAt:       time.Now().UTC(),
		}

		if err := h.Jobs.InsertJob(r.Context(), job); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Str("title", title).Msg("Failed to insert imported job")
			result.Skipped++
			continue
		}
		result.Imported++
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// ListJobs returns all job sites.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Jobs.ListJobs(r.Context())
	if err != nil {
		http.Error(w, "Service error listing jobs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}
