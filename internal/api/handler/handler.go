package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"crewclock.service/internal/core"
	"github.com/gorilla/mux"
)

type ClockHandler struct {
	Service *core.ClockService
}

type ClockRequest struct {
	ContractorID string  `json:"contractorId"`
	JobID        string  `json:"jobId"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (h *ClockHandler) ClockInOut(w http.ResponseWriter, r *http.Request) {
	var req ClockRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.ContractorID == "" {
		http.Error(w, "ContractorID is required", http.StatusBadRequest)
		return
	}
	if req.JobID == "" {
		http.Error(w, "JobID is required", http.StatusBadRequest)
		return
	}

	outcome, err := h.Service.ProcessClockInOut(r.Context(), req.ContractorID, req.JobID, req.Latitude, req.Longitude)

	switch {
	case errors.Is(err, core.ErrJobNotFound):
		http.Error(w, "Unknown job", http.StatusNotFound)
		return
	case errors.Is(err, core.ErrOutsideGeofence):
		http.Error(w, "Location is outside the job site geofence", http.StatusForbidden)
		return
	case err != nil:
		http.Error(w, "Service error processing event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(outcome)
}

// EarningsPreview returns the as-of-now pay breakdown for an open session.
// The UI polls this while a contractor is clocked in.
func (h *ClockHandler) EarningsPreview(w http.ResponseWriter, r *http.Request) {
	contractorID := mux.Vars(r)["contractorId"]
	if contractorID == "" {
		http.Error(w, "ContractorID is required", http.StatusBadRequest)
		return
	}

	result, err := h.Service.EarningsPreview(r.Context(), contractorID)

	switch {
	case errors.Is(err, core.ErrNoOpenSession):
		http.Error(w, "No open work session", http.StatusNotFound)
		return
	case errors.Is(err, core.ErrContractorNotFound):
		http.Error(w, "Unknown contractor", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Service error computing earnings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
