package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"crewclock.service/internal/api/handler"
	"crewclock.service/internal/core"
	"crewclock.service/internal/ports/repository"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(service *core.ClockService, jobs repository.JobRepository) *mux.Router {

	clockHandler := handler.ClockHandler{
		Service: service,
	}
	jobsHandler := handler.JobsHandler{
		Jobs: jobs,
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/clock", clockHandler.ClockInOut).Methods(http.MethodPost)
	api.HandleFunc("/contractors/{contractorId}/earnings", clockHandler.EarningsPreview).Methods(http.MethodGet)
	api.HandleFunc("/jobs", jobsHandler.ListJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs/import", jobsHandler.ImportJobs).Methods(http.MethodPost)
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	return r
}
