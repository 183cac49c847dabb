package repository

import (
	"context"
	"database/sql"

	"crewclock.service/internal/core/model"
)

// JobRepository contract
type JobRepository interface {
	GetJob(ctx context.Context, id string) (*model.Job, error)
	InsertJob(ctx context.Context, job model.Job) error
	ListJobs(ctx context.Context) ([]model.Job, error)
}

// PostgresJobRepository is the concrete job store for PostgreSQL.
type PostgresJobRepository struct {
	DB *sql.DB
}

// NewJobRepository create new instance
func NewJobRepository(db *sql.DB) JobRepository {
	return &PostgresJobRepository{DB: db}
}

// GetJob fetches a job site by ID, or nil when it does not exist.
func (r *PostgresJobRepository) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job := &model.Job{}

	query := `SELECT id, title, postcode, latitude, longitude, geofence_radius_m, weekend_overtime, created_at
              FROM jobs WHERE id = $1`

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Postcode, &job.Latitude, &job.Longitude,
		&job.GeofenceRadiusM, &job.WeekendOvertime, &job.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return job, nil
}

// InsertJob stores a job site, typically from a CSV import.
func (r *PostgresJobRepository) InsertJob(ctx context.Context, job model.Job) error {
	query := `INSERT INTO jobs (id, title, postcode, latitude, longitude, geofence_radius_m, weekend_overtime, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctx, query,
		job.ID, job.Title, job.Postcode, job.Latitude, job.Longitude,
		job.GeofenceRadiusM, job.WeekendOvertime, job.CreatedAt,
	)
	return err
}

// ListJobs returns all job sites.
func (r *PostgresJobRepository) ListJobs(ctx context.Context) ([]model.Job, error) {
	query := `SELECT id, title, postcode, latitude, longitude, geofence_radius_m, weekend_overtime, created_at
              FROM jobs ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Postcode, &job.Latitude, &job.Longitude,
			&job.GeofenceRadiusM, &job.WeekendOvertime, &job.CreatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}
